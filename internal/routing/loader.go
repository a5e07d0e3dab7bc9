package routing

import (
	"io"

	"github.com/vyrodovalexey/avaroute/internal/config"
)

// Load reads the routing document at path and builds a table from it.
// Errors are *config.IOError, *config.SyntaxError or one of the
// validation errors of this package.
func Load(path string) (*Table, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewTable(cfg)
}

// LoadFromReader reads a routing document in the given format and
// builds a table from it.
func LoadFromReader(r io.Reader, format config.Format) (*Table, error) {
	cfg, err := config.LoadConfigFromReader(r, format)
	if err != nil {
		return nil, err
	}
	return NewTable(cfg)
}
