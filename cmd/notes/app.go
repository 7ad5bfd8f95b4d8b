// ABOUTME: Builds gateway, blob store and session from configuration.
// ABOUTME: One controller per process, no package-level client singleton.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/harper/notes/internal/charm"
	"github.com/harper/notes/internal/config"
	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/notes"
	"github.com/harper/notes/internal/objstore"
	"github.com/harper/notes/internal/rest"
	"github.com/harper/notes/internal/session"
)

type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	ctrl    *notes.Controller
	session session.Session

	// refreshErr is the result of the up-front fetch, if one ran.
	refreshErr error

	charmClient *charm.Client
	store       *db.Store
	bucket      *objstore.Store
	closers     []io.Closer
}

func newApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	gw, err := a.noteGateway()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	blobs, err := a.blobStore()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.session, err = a.newSession()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	// Web and MCP serve overlapping requests, so a slow fetch must not
	// overwrite a newer one.
	a.ctrl = notes.NewController(gw, blobs, form.New(),
		notes.WithLogger(logger),
		notes.WithStaleRefreshGuard(),
	)
	return a, nil
}

func (a *App) noteGateway() (gateway.NoteGateway, error) {
	switch a.cfg.Backend {
	case config.BackendCharm:
		client, err := a.charm()
		if err != nil {
			return nil, err
		}
		return client.Notes(), nil
	case config.BackendSQLite:
		return a.sqlite()
	case config.BackendREST:
		client := rest.NewClient(a.cfg.REST.BaseURL, a.cfg.REST.Token)
		a.closers = append(a.closers, client)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", a.cfg.Backend)
	}
}

func (a *App) blobStore() (gateway.BlobStore, error) {
	switch a.cfg.Blobs {
	case config.BackendCharm:
		client, err := a.charm()
		if err != nil {
			return nil, err
		}
		return client.Blobs(), nil
	case config.BackendSQLite:
		return a.sqlite()
	case config.BlobsMinio:
		m := a.cfg.Minio
		bucket, err := objstore.New(objstore.Config{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
			Region:    m.Region,
			UseSSL:    m.UseSSL,
			URLExpiry: m.URLExpiry,
		})
		if err != nil {
			return nil, err
		}
		a.bucket = bucket
		return bucket, nil
	default:
		return nil, fmt.Errorf("unknown blob store %q", a.cfg.Blobs)
	}
}

// newSession uses the charm account when notes live there. Other backends
// authenticate out of band, so the configured username is only a label.
func (a *App) newSession() (session.Session, error) {
	if a.cfg.Backend == config.BackendCharm {
		client, err := a.charm()
		if err != nil {
			return nil, err
		}
		return client.Session(), nil
	}

	name := a.cfg.Username
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "friend"
	}
	return session.NewStatic(name), nil
}

// charm returns the shared charm client, creating it on first use.
func (a *App) charm() (*charm.Client, error) {
	if a.charmClient != nil {
		return a.charmClient, nil
	}
	client, err := charm.NewClient(charm.Config{
		Host:           a.cfg.Charm.Host,
		AutoSync:       a.cfg.Charm.AutoSync,
		StaleThreshold: a.cfg.Charm.StaleThreshold,
	}, charm.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("charm client: %w", err)
	}
	a.charmClient = client
	return client, nil
}

// sqlite opens the database once; it serves as both gateway and blob store.
func (a *App) sqlite() (*db.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	path := a.cfg.SQLite.Path
	if path == "" {
		path = db.DefaultPath()
	}
	store, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite backend: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store)
	return store, nil
}

// requireNotes fails when the up-front fetch did, since prefixes cannot be
// resolved against a list that was never loaded.
func (a *App) requireNotes() error {
	if a.refreshErr != nil {
		return fmt.Errorf("could not load notes: %w", a.refreshErr)
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

