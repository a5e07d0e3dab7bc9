package routing

import (
	"net/http"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

// HeaderRule requires a request header with an exact value.
type HeaderRule struct {
	name  string
	value string
}

// NewHeaderRule creates a header rule. The name is not validated.
func NewHeaderRule(name, value string) *HeaderRule {
	return &HeaderRule{name: name, value: value}
}

// ParseHeaderRule validates a persisted header requirement for the rule
// at index. A nil hc means no header constraint. Name and value must be
// given together.
func ParseHeaderRule(index int, hc *config.HeaderConfig) (*HeaderRule, error) {
	if hc == nil {
		return nil, nil
	}
	if hc.Name == nil {
		return nil, &MissingFieldError{Field: fieldHeaderName, Index: index}
	}
	if hc.Value == nil {
		return nil, &MissingFieldError{Field: fieldHeaderValue, Index: index}
	}
	if err := util.ValidateHeaderName(*hc.Name); err != nil {
		return nil, &InvalidFieldError{Field: fieldHeaderName, Index: index, Message: err.Error()}
	}
	return NewHeaderRule(*hc.Name, *hc.Value), nil
}

// Name returns the header name as configured.
func (h *HeaderRule) Name() string {
	return h.name
}

// Value returns the required header value.
func (h *HeaderRule) Value() string {
	return h.value
}

// Match reports whether headers carry the header with the exact value.
// The name lookup is case-insensitive; any one of several values may
// match.
func (h *HeaderRule) Match(headers http.Header) bool {
	values := headers.Values(h.name)
	if len(values) == 0 {
		// Non-canonical keys set directly on the map.
		for key, vv := range headers {
			if strings.EqualFold(key, h.name) {
				values = append(values, vv...)
			}
		}
	}

	for _, v := range values {
		if v == h.value {
			return true
		}
	}
	return false
}

// Config returns the persisted form of the header rule.
func (h *HeaderRule) Config() *config.HeaderConfig {
	return &config.HeaderConfig{
		Name:  config.StringPtr(h.name),
		Value: config.StringPtr(h.value),
	}
}
