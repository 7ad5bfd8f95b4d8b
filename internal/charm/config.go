// ABOUTME: Configuration for Charm KV backend
// ABOUTME: Carries the charm server host and sync behaviour

package charm

import (
	"os"
	"time"
)

const DefaultHost = "charm.2389.dev"

// Config holds charm sync configuration.
type Config struct {
	// Host is the charm server (default: charm.2389.dev)
	Host string

	// AutoSync pushes to the server after every write
	AutoSync bool

	// StaleThreshold triggers a sync before reads when the last sync is
	// older than this. Zero disables it.
	StaleThreshold time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		AutoSync: true,
	}
}

// applyHost points the charm client libraries at the configured server.
// They read CHARM_HOST from the environment.
func (c Config) applyHost() error {
	if c.Host == "" {
		return nil
	}
	return os.Setenv("CHARM_HOST", c.Host)
}
