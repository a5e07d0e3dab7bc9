// Package routing provides the validated, immutable routing table used
// by the gateway dispatcher.
//
// A Table is built from a config.GatewayConfig. Building compiles every
// host and path pattern, checks required fields and fails on the first
// invalid rule, so a Table never exists in a partially valid state.
//
// # Matching
//
// Rules are evaluated in declaration order and the first matching rule
// wins. A rule matches when every matcher it declares matches; a rule
// without matchers matches every request.
//
//	table, err := routing.Load("routes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rule, err := table.FirstMatch(routing.RequestFromHTTP(req))
//	if errors.Is(err, util.ErrNotFound) {
//	    // no route
//	}
//
// Host and path patterns use RE2 syntax and are unanchored searches,
// case-sensitive unless the pattern opts out with (?i). Header names
// are compared case-insensitively, header values exactly.
//
// # Reloading
//
// Tables are never modified. A reload builds a new Table and publishes
// it through a Store, whose atomic swap guarantees that concurrent
// lookups see either the old or the new table. Watcher drives such
// reloads from file system events and keeps the last good table when a
// reload fails.
package routing
