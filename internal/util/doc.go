// Package util provides utility functions and types shared by the
// routing configuration packages.
//
// # Error Types
//
// Sentinel errors for stable conditions checked with errors.Is:
//
//   - ErrNotFound: no routing rule matched a request
//   - ErrConfigInvalid: a routing document failed validation
//
// RouteNotFoundError carries the request host and path and matches
// ErrNotFound.
//
// # Validation
//
// Input validation helpers for URLs and header names:
//
//	err := util.ValidateURL("https://auth.example.com/check")
//	err := util.ValidateHeaderName("X-Tenant")
package util
