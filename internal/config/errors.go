package config

import (
	"fmt"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// IOError is returned when a routing document cannot be read.
type IOError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *IOError) Is(target error) bool {
	_, ok := target.(*IOError)
	return ok
}

// SyntaxError is returned when a routing document is not well-formed in
// its serialization format. Line and Column are set when the decoder
// reports a position.
type SyntaxError struct {
	Format  Format
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s config at line %d, column %d: %s", e.Format, e.Line, e.Column, msg)
	}
	return fmt.Sprintf("failed to parse %s config: %s", e.Format, msg)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *SyntaxError) Is(target error) bool {
	if target == util.ErrConfigInvalid {
		return true
	}
	_, ok := target.(*SyntaxError)
	return ok
}

// UnsupportedFormatError is returned for a format name or value the
// loader cannot decode or encode.
type UnsupportedFormatError struct {
	Format string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q (expected yaml or toml)", e.Format)
}

// Is checks if the error matches the target.
func (e *UnsupportedFormatError) Is(target error) bool {
	if target == util.ErrInvalidInput {
		return true
	}
	_, ok := target.(*UnsupportedFormatError)
	return ok
}
