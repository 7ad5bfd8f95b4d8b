// ABOUTME: Opens the charm KV database per operation and keeps it in sync.
// ABOUTME: Holding no handle lets the CLI, web server and MCP server share one store.

package charm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/charm/kv"
)

// DBName is the charm kv database holding notes and images.
const DBName = "notes"

// Client reaches the charm kv database. It holds no connection; every call
// opens the database, runs, and closes it again.
type Client struct {
	db             string
	autoSync       bool
	staleThreshold time.Duration
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for sync notices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient points the process at cfg.Host and returns a client for DBName.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.applyHost(); err != nil {
		return nil, fmt.Errorf("set charm host: %w", err)
	}

	c := &Client{
		db:             DBName,
		autoSync:       cfg.AutoSync,
		staleThreshold: cfg.StaleThreshold,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// view runs fn against a read-only handle, pulling from the server first
// if the local copy has gone stale.
func (c *Client) view(fn func(k *kv.KV) error) error {
	if err := c.refreshIfStale(); err != nil {
		return err
	}
	return kv.DoReadOnly(c.db, fn)
}

// update runs fn with write access and pushes the result when auto-sync is on.
func (c *Client) update(fn func(k *kv.KV) error) error {
	return kv.Do(c.db, func(k *kv.KV) error {
		if err := fn(k); err != nil {
			return err
		}
		if !c.autoSync {
			return nil
		}
		return k.Sync()
	})
}

func (c *Client) load(key []byte) ([]byte, error) {
	var raw []byte
	err := c.view(func(k *kv.KV) error {
		v, err := k.Get(key)
		raw = v
		return err
	})
	return raw, err
}

func (c *Client) store(key, value []byte) error {
	return c.update(func(k *kv.KV) error {
		return k.Set(key, value)
	})
}

// SyncStatus describes the local copy relative to the server.
type SyncStatus struct {
	LastSync time.Time
	// Stale is only ever set when a stale threshold is configured.
	Stale bool
}

// Status reports when the local copy last synced.
func (c *Client) Status() SyncStatus {
	var st SyncStatus
	_ = kv.DoReadOnly(c.db, func(k *kv.KV) error {
		st.LastSync = k.LastSyncTime()
		if c.staleThreshold > 0 {
			st.Stale = k.IsStale(c.staleThreshold)
		}
		return nil
	})
	return st
}

// Sync pushes and pulls with the charm server.
func (c *Client) Sync() error {
	return kv.Do(c.db, func(k *kv.KV) error {
		return k.Sync()
	})
}

func (c *Client) refreshIfStale() error {
	if !c.Status().Stale {
		return nil
	}
	c.logger.Info("local notes stale, syncing", "threshold", c.staleThreshold)
	return c.Sync()
}

// Reset drops the local copy. The server keeps its data.
func (c *Client) Reset() error {
	return kv.Do(c.db, func(k *kv.KV) error {
		return k.Reset()
	})
}
