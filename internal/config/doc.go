// Package config provides the persisted routing document model and its
// loading and encoding for the gateway.
//
// A routing document carries the authorization API URL and an ordered
// list of rules. Documents are read from YAML (also accepting JSON) or
// TOML, chosen by file extension:
//
//	cfg, err := config.LoadConfig("routes.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Optional fields are pointers so that an absent field is
// distinguishable from an empty one, and encoding never writes
// placeholders for absent fields:
//
//	data, err := config.Marshal(cfg, config.FormatYAML)
//
// This package does not compile patterns or enforce required rule
// fields; the routing package turns a GatewayConfig into a validated
// routing table.
package config
