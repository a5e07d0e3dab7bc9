// Package observability provides logging and metrics functionality
// for the routing configuration tooling.
//
// # Logging
//
// The Logger interface provides structured logging backed by zap:
//
//	logger, err := observability.NewLogger(observability.DefaultLogConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("routing table loaded",
//	    observability.String("path", path),
//	    observability.Int("rules", table.Len()),
//	)
//
// # Metrics
//
// Prometheus metrics for configuration loads and table swaps:
//
//	metrics := observability.NewMetrics("avaroute")
//	metrics.RecordLoad(true, elapsed)
//	handler := metrics.Handler()
package observability
