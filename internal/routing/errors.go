package routing

import (
	"fmt"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// ErrNoTable is returned by Store lookups before a table is installed.
var ErrNoTable = fmt.Errorf("no routing table installed: %w", util.ErrNotFound)

// fieldLocation renders a field location, e.g. "rules[2].path".
func fieldLocation(index int, field string) string {
	if index < 0 {
		return field
	}
	if field == "" {
		return fmt.Sprintf("rules[%d]", index)
	}
	return fmt.Sprintf("rules[%d].%s", index, field)
}

// InvalidPatternError is returned when a host or path pattern does not
// compile. Index is the rule position, or -1 outside of a rule.
type InvalidPatternError struct {
	Field string
	Index int
	Text  string
	Cause error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s: invalid pattern %q: %v", fieldLocation(e.Index, e.Field), e.Text, e.Cause)
}

// Unwrap returns the underlying error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *InvalidPatternError) Is(target error) bool {
	if target == util.ErrConfigInvalid {
		return true
	}
	_, ok := target.(*InvalidPatternError)
	return ok
}

// MissingFieldError is returned when a required field is absent or
// empty. Index is the rule position, or -1 for document-level fields.
type MissingFieldError struct {
	Field string
	Index int
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field is missing", fieldLocation(e.Index, e.Field))
}

// Is checks if the error matches the target.
func (e *MissingFieldError) Is(target error) bool {
	if target == util.ErrConfigInvalid {
		return true
	}
	_, ok := target.(*MissingFieldError)
	return ok
}

// InvalidFieldError is returned when a present field has an unusable
// value.
type InvalidFieldError struct {
	Field   string
	Index   int
	Message string
}

// Error implements the error interface.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: %s", fieldLocation(e.Index, e.Field), e.Message)
}

// Is checks if the error matches the target.
func (e *InvalidFieldError) Is(target error) bool {
	if target == util.ErrConfigInvalid {
		return true
	}
	_, ok := target.(*InvalidFieldError)
	return ok
}
