package routing

import (
	"errors"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/config"
)

// Field names used in error reports.
const (
	fieldHost          = "host"
	fieldPath          = "path"
	fieldHeaderName    = "header.name"
	fieldHeaderValue   = "header.value"
	fieldTargetService = "target_service"
	fieldTargetPort    = "target_port"
	fieldAuthURL       = "authorization_api_url"
	fieldRules         = "rules"
)

// Rule is one validated routing entry. Rules are immutable.
type Rule struct {
	index          int
	host           *Pattern
	path           *Pattern
	header         *HeaderRule
	targetService  string
	targetPort     string
	authentication *bool
}

// ParseRule validates the persisted rule at position index. Host, path
// and header are checked in that order, then the target fields.
func ParseRule(index int, rc config.RouteConfig) (*Rule, error) {
	rule := &Rule{index: index}

	var err error
	if rule.host, err = parseOptionalPattern(index, fieldHost, rc.Host); err != nil {
		return nil, err
	}
	if rule.path, err = parseOptionalPattern(index, fieldPath, rc.Path); err != nil {
		return nil, err
	}
	if rule.header, err = ParseHeaderRule(index, rc.Header); err != nil {
		return nil, err
	}

	if strings.TrimSpace(rc.TargetService) == "" {
		return nil, &MissingFieldError{Field: fieldTargetService, Index: index}
	}
	if strings.TrimSpace(rc.TargetPort) == "" {
		return nil, &MissingFieldError{Field: fieldTargetPort, Index: index}
	}
	rule.targetService = rc.TargetService
	rule.targetPort = rc.TargetPort

	if rc.AuthenticationRequired != nil {
		rule.authentication = config.BoolPtr(*rc.AuthenticationRequired)
	}

	return rule, nil
}

// parseOptionalPattern compiles text when present. Absent means no
// constraint; nothing is compiled.
func parseOptionalPattern(index int, field string, text *string) (*Pattern, error) {
	if text == nil {
		return nil, nil
	}
	p, err := ParsePattern(field, *text)
	if err != nil {
		var patternErr *InvalidPatternError
		if errors.As(err, &patternErr) {
			patternErr.Index = index
		}
		return nil, err
	}
	return p, nil
}

// Index returns the rule's position in its table.
func (r *Rule) Index() int {
	return r.index
}

// Host returns the host pattern, or nil when unconstrained.
func (r *Rule) Host() *Pattern {
	return r.host
}

// Path returns the path pattern, or nil when unconstrained.
func (r *Rule) Path() *Pattern {
	return r.path
}

// Header returns the header rule, or nil when unconstrained.
func (r *Rule) Header() *HeaderRule {
	return r.header
}

// TargetService returns the backend service identifier.
func (r *Rule) TargetService() string {
	return r.targetService
}

// TargetPort returns the backend port as written, which may be a named
// or templated port.
func (r *Rule) TargetPort() string {
	return r.targetPort
}

// AuthenticationRequired returns the configured flag, or nil when the
// rule leaves it to the gateway default. The result is a copy.
func (r *Rule) AuthenticationRequired() *bool {
	if r.authentication == nil {
		return nil
	}
	return config.BoolPtr(*r.authentication)
}

// RequiresAuthentication resolves the flag against the gateway default.
func (r *Rule) RequiresAuthentication(defaultRequired bool) bool {
	if r.authentication == nil {
		return defaultRequired
	}
	return *r.authentication
}

// HasMatchers returns true if the rule constrains host, path or header.
func (r *Rule) HasMatchers() bool {
	return r.host != nil || r.path != nil || r.header != nil
}

// Matches reports whether every matcher the rule declares matches req.
// A rule without matchers matches every request.
func (r *Rule) Matches(req Request) bool {
	if r.host != nil && !r.host.Match(req.Host) {
		return false
	}
	if r.path != nil && !r.path.Match(req.Path) {
		return false
	}
	if r.header != nil && !r.header.Match(req.Headers) {
		return false
	}
	return true
}

// Config returns the persisted form of the rule. Pattern fields carry
// their original source text and absent fields stay nil.
func (r *Rule) Config() config.RouteConfig {
	rc := config.RouteConfig{
		TargetService:          r.targetService,
		TargetPort:             r.targetPort,
		AuthenticationRequired: r.AuthenticationRequired(),
	}
	if r.host != nil {
		rc.Host = config.StringPtr(r.host.String())
	}
	if r.path != nil {
		rc.Path = config.StringPtr(r.path.String())
	}
	if r.header != nil {
		rc.Header = r.header.Config()
	}
	return rc
}
