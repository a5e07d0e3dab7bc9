package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a routing document serialization format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a format name. "yml" and "json" map to FormatYAML,
// since the YAML decoder accepts JSON documents.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "json":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// FormatFromPath selects the format by file extension. Unknown
// extensions fall back to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Loader handles configuration loading from files and readers.
type Loader struct {
	format Format
}

// LoaderOption is a functional option for configuring the loader.
type LoaderOption func(*Loader)

// WithFormat forces a format instead of detecting it from the path.
func WithFormat(format Format) LoaderOption {
	return func(l *Loader) {
		l.format = format
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadConfig loads configuration from a file path.
func LoadConfig(path string) (*GatewayConfig, error) {
	return NewLoader().Load(path)
}

// LoadConfigFromReader loads configuration in the given format from an
// io.Reader.
func LoadConfigFromReader(r io.Reader, format Format) (*GatewayConfig, error) {
	return NewLoader(WithFormat(format)).LoadFromReader(r)
}

// Load loads configuration from a file path.
func (l *Loader) Load(path string) (*GatewayConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}

	format := l.format
	if format == "" {
		format = FormatFromPath(path)
	}

	return Parse(data, format)
}

// LoadFromReader loads configuration from an io.Reader.
func (l *Loader) LoadFromReader(r io.Reader) (*GatewayConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Path: "<reader>", Cause: err}
	}

	format := l.format
	if format == "" {
		format = FormatYAML
	}

	return Parse(data, format)
}

// Parse decodes a routing document and folds the legacy services key
// into Rules. A document that sets both keys is rejected.
func Parse(data []byte, format Format) (*GatewayConfig, error) {
	var cfg GatewayConfig

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, newTOMLSyntaxError(err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &SyntaxError{Format: format, Cause: err}
		}
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	if cfg.Services != nil {
		if cfg.Rules != nil {
			return nil, &SyntaxError{
				Format:  format,
				Message: "both rules and services are set; use rules only",
			}
		}
		cfg.Rules = cfg.Services
		cfg.Services = nil
		cfg.LegacyServices = true
	}

	return &cfg, nil
}

// newTOMLSyntaxError converts a go-toml error, keeping its position.
func newTOMLSyntaxError(err error) *SyntaxError {
	syntaxErr := &SyntaxError{Format: FormatTOML, Cause: err}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		syntaxErr.Line, syntaxErr.Column = decodeErr.Position()
	}

	return syntaxErr
}

// Marshal encodes a configuration in the given format. Absent optional
// fields are omitted and the rule list is always written.
func Marshal(cfg *GatewayConfig, format Format) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	out := GatewayConfig{
		AuthorizationAPIURL: cfg.AuthorizationAPIURL,
		Rules:               cfg.Rules,
	}
	if out.Rules == nil {
		out.Rules = []RouteConfig{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(out); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	return buf.Bytes(), nil
}

// WriteFile encodes a configuration in the format implied by path and
// writes it.
func WriteFile(path string, cfg *GatewayConfig) error {
	data, err := Marshal(cfg, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
