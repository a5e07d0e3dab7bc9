package routing

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Pattern is a compiled regular expression that remembers the exact
// text it was compiled from. The zero value is not usable; create
// patterns with ParsePattern.
//
// Encoding a Pattern writes only its source text. Decoding always
// recompiles, so a Pattern holding an invalid expression cannot exist.
type Pattern struct {
	source string
	regex  *regexp.Regexp
}

// ParsePattern compiles text. field names the configuration field the
// text came from and is reported in the error.
func ParsePattern(field, text string) (*Pattern, error) {
	regex, err := compileRegex(text)
	if err != nil {
		return nil, &InvalidPatternError{Field: field, Index: -1, Text: text, Cause: err}
	}
	return &Pattern{source: text, regex: regex}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(text string) *Pattern {
	p, err := ParsePattern("", text)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text exactly as written.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether s contains a match of the pattern.
func (p *Pattern) Match(s string) bool {
	return p.regex.MatchString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (p *Pattern) MarshalText() ([]byte, error) {
	return []byte(p.source), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern("", string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p *Pattern) MarshalYAML() (interface{}, error) {
	return p.source, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: pattern must be a string", value.Line)
	}
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(text))
}
