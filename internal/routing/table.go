package routing

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

// Table is the validated, ordered set of routing rules plus the
// authorization endpoint. Tables are immutable and safe for concurrent
// use.
type Table struct {
	authorizationAPIURL string
	rules               []*Rule
}

// NewTable validates cfg and builds a table. It returns the first error
// found; no table is returned unless every rule is valid. An empty rule
// list is valid and matches nothing.
func NewTable(cfg *config.GatewayConfig) (*Table, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil: %w", util.ErrConfigInvalid)
	}

	if strings.TrimSpace(cfg.AuthorizationAPIURL) == "" {
		return nil, &MissingFieldError{Field: fieldAuthURL, Index: -1}
	}
	if cfg.Rules == nil {
		return nil, &MissingFieldError{Field: fieldRules, Index: -1}
	}

	rules := make([]*Rule, 0, len(cfg.Rules))
	for i, rc := range cfg.Rules {
		rule, err := ParseRule(i, rc)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return &Table{
		authorizationAPIURL: cfg.AuthorizationAPIURL,
		rules:               rules,
	}, nil
}

// FirstMatch returns the first rule, in declaration order, that matches
// req. It returns a *util.RouteNotFoundError when no rule matches.
func (t *Table) FirstMatch(req Request) (*Rule, error) {
	for _, rule := range t.rules {
		if rule.Matches(req) {
			return rule, nil
		}
	}
	return nil, util.NewRouteNotFoundError(req.Host, req.Path)
}

// AuthorizationAPIURL returns the authorization endpoint.
func (t *Table) AuthorizationAPIURL() string {
	return t.authorizationAPIURL
}

// Rules returns the rules in declaration order.
func (t *Table) Rules() []*Rule {
	rules := make([]*Rule, len(t.rules))
	copy(rules, t.rules)
	return rules
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Config returns the persisted form of the table, suitable for
// config.Marshal.
func (t *Table) Config() *config.GatewayConfig {
	rules := make([]config.RouteConfig, 0, len(t.rules))
	for _, rule := range t.rules {
		rules = append(rules, rule.Config())
	}
	return &config.GatewayConfig{
		AuthorizationAPIURL: t.authorizationAPIURL,
		Rules:               rules,
	}
}
