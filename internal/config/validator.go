package config

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// ValidationWarning is a non-fatal finding about a routing document.
type ValidationWarning struct {
	Path    string
	Message string
}

// String returns the warning as "path: message".
func (w ValidationWarning) String() string {
	if w.Path != "" {
		return fmt.Sprintf("%s: %s", w.Path, w.Message)
	}
	return w.Message
}

// ValidationWarnings is a collection of validation warnings.
type ValidationWarnings []ValidationWarning

// String joins all warnings, one per line.
func (w ValidationWarnings) String() string {
	lines := make([]string, 0, len(w))
	for _, warning := range w {
		lines = append(lines, warning.String())
	}
	return strings.Join(lines, "\n")
}

// Lint reports suspicious but legal constructs in a configuration.
// It never rejects a document; required fields and patterns are checked
// when the routing table is built.
func Lint(cfg *GatewayConfig) ValidationWarnings {
	if cfg == nil {
		return nil
	}

	var warnings ValidationWarnings

	if cfg.LegacyServices {
		warnings = append(warnings, ValidationWarning{
			Path:    "services",
			Message: "services is deprecated, rename it to rules",
		})
	}

	if cfg.AuthorizationAPIURL != "" {
		if err := util.ValidateURL(cfg.AuthorizationAPIURL); err != nil {
			warnings = append(warnings, ValidationWarning{
				Path:    "authorization_api_url",
				Message: err.Error(),
			})
		}
	}

	last := len(cfg.Rules) - 1
	for i := range cfg.Rules {
		if i < last && !cfg.Rules[i].HasMatchers() {
			warnings = append(warnings, ValidationWarning{
				Path: fmt.Sprintf("rules[%d]", i),
				Message: fmt.Sprintf("rule has no host, path or header and matches every request; "+
					"rules[%d] to rules[%d] are unreachable", i+1, last),
			})
			break
		}
	}

	return warnings
}
