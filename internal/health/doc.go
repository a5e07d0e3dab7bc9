// Package health provides liveness and readiness endpoints for the
// routing service.
//
// Readiness reflects the routing table: the service is unhealthy until a
// table is installed and degraded while the most recent reload has
// failed and the previous table is still being served.
//
//	checker := health.NewChecker(version)
//	checker.RegisterCheck("routing_table", health.TableCheck(store))
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/health", checker.HealthHandler())
//	mux.HandleFunc("/ready", checker.ReadinessHandler())
package health
