package config

// GatewayConfig is the persisted form of a routing document.
type GatewayConfig struct {
	// AuthorizationAPIURL is the endpoint consulted by the dispatcher for
	// rules that require authentication.
	AuthorizationAPIURL string `yaml:"authorization_api_url" toml:"authorization_api_url"`

	// Rules is the ordered rule list. Order is the operator's priority.
	Rules []RouteConfig `yaml:"rules" toml:"rules"`

	// Services is the legacy name of Rules. It is folded into Rules on
	// load and never written back.
	Services []RouteConfig `yaml:"services,omitempty" toml:"services,omitempty"`

	// LegacyServices records that the document used the services key.
	LegacyServices bool `yaml:"-" toml:"-"`
}

// RouteConfig is the persisted form of one routing rule.
type RouteConfig struct {
	Host                   *string       `yaml:"host,omitempty" toml:"host,omitempty"`
	Path                   *string       `yaml:"path,omitempty" toml:"path,omitempty"`
	Header                 *HeaderConfig `yaml:"header,omitempty" toml:"header,omitempty"`
	TargetService          string        `yaml:"target_service" toml:"target_service"`
	TargetPort             string        `yaml:"target_port" toml:"target_port"`
	AuthenticationRequired *bool         `yaml:"authentication_required,omitempty" toml:"authentication_required,omitempty"`
}

// HeaderConfig is the persisted form of an exact header requirement.
type HeaderConfig struct {
	Name  *string `yaml:"name,omitempty" toml:"name,omitempty"`
	Value *string `yaml:"value,omitempty" toml:"value,omitempty"`
}

// HasMatchers returns true if the rule constrains host, path or header.
func (rc *RouteConfig) HasMatchers() bool {
	return rc.Host != nil || rc.Path != nil || rc.Header != nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
