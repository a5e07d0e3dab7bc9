//go:build functional

// Package testconfig provides test environment configuration loaded
// from environment variables instead of hardcoded values.
package testconfig

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for test configuration.
const (
	// DefaultConfigDir is the example document directory relative to a
	// package under test/.
	DefaultConfigDir = "../../configs"

	// DefaultTimeout for test operations.
	DefaultTimeout = 5 * time.Second

	// DefaultInterval for polling.
	DefaultInterval = 20 * time.Millisecond
)

// Environment variable names.
const (
	EnvConfigDir = "TEST_AVAROUTE_CONFIG_DIR"
	EnvTimeout   = "TEST_AVAROUTE_TIMEOUT"
)

// TestEnv holds the settings of a test run.
type TestEnv struct {
	ConfigDir string
	Timeout   time.Duration
	Interval  time.Duration
}

// Load reads the test environment.
func Load() *TestEnv {
	env := &TestEnv{
		ConfigDir: getEnvOrDefault(EnvConfigDir, DefaultConfigDir),
		Timeout:   DefaultTimeout,
		Interval:  DefaultInterval,
	}

	if value := os.Getenv(EnvTimeout); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			env.Timeout = d
		}
	}

	return env
}

// ConfigPath returns the path of an example document.
func (e *TestEnv) ConfigPath(name string) string {
	return filepath.Join(e.ConfigDir, name)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
