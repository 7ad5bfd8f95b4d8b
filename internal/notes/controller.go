// ABOUTME: Note lifecycle controller coordinating the gateway and blob store.
// ABOUTME: Every mutation is followed by a wholesale refetch of the note list.

package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

var (
	ErrFetch  = errors.New("fetch notes")
	ErrUpload = errors.New("upload image")
	ErrCreate = errors.New("create note")
	ErrDelete = errors.New("delete note")

	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
)

const minPrefixLen = 6

// snapshot is one fetched note list. It is never modified after Store.
type snapshot struct {
	gen   uint64
	notes []*models.Note
}

// Controller mediates every state-changing note operation and keeps the
// in-memory note list in step with the backend.
type Controller struct {
	gateway gateway.NoteGateway
	blobs   gateway.BlobStore
	form    *form.Form
	logger  *slog.Logger
	now     func() time.Time
	guard   bool

	cache      atomic.Pointer[snapshot]
	refreshSeq atomic.Uint64

	keyMu     sync.Mutex
	lastStamp int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock overrides the time source used for storage keys.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithStaleRefreshGuard discards a refresh response when a refresh that
// started later has already been applied. Without it the last response to
// arrive wins, whatever its age.
func WithStaleRefreshGuard() Option {
	return func(c *Controller) {
		c.guard = true
	}
}

// NewController creates a controller over the given backends and form.
// The note list starts empty until the first Refresh.
func NewController(gw gateway.NoteGateway, blobs gateway.BlobStore, f *form.Form, opts ...Option) *Controller {
	c := &Controller{
		gateway: gw,
		blobs:   blobs,
		form:    f,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache.Store(&snapshot{})
	return c
}

// Form returns the form whose draft CreateNote submits.
func (c *Controller) Form() *form.Form {
	return c.form
}

// Notes returns a copy of the current note list.
func (c *Controller) Notes() []*models.Note {
	snap := c.cache.Load()
	out := make([]*models.Note, len(snap.notes))
	for i, n := range snap.notes {
		cp := *n
		out[i] = &cp
	}
	return out
}

// Refresh replaces the note list with the backend's current set. On
// failure the previous list stays in place.
func (c *Controller) Refresh(ctx context.Context) error {
	gen := c.refreshSeq.Add(1)

	list, err := c.gateway.List(ctx)
	if err != nil {
		c.logger.Error("fetch failure", "op", "refresh", "error", err)
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	next := &snapshot{gen: gen, notes: list}
	if !c.guard {
		c.cache.Store(next)
		return nil
	}

	for {
		cur := c.cache.Load()
		if cur.gen > gen {
			c.logger.Debug("discarding stale refresh", "generation", gen, "current", cur.gen)
			return nil
		}
		if c.cache.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

// CreateNote submits the form's draft. An incomplete draft is ignored.
// With an image, the upload finishes before the record is created, and
// the draft is cleared only once the record exists.
func (c *Controller) CreateNote(ctx context.Context) error {
	draft := c.form.Draft()
	if !draft.Complete() {
		c.logger.Debug("create skipped: name and description are required")
		return nil
	}

	var key string
	if draft.Image != nil {
		key = c.storageKey(draft.Image.Name)
		if err := c.blobs.Put(ctx, key, draft.Image.Data); err != nil {
			c.logger.Error("upload failure", "op", "create", "key", key, "error", err)
			return fmt.Errorf("%w %s: %w", ErrUpload, key, err)
		}
	}

	note, err := c.gateway.Create(ctx, models.NoteInput{
		Name:        draft.Name,
		Description: draft.Description,
		Image:       key,
	})
	if err != nil {
		attrs := []any{"op", "create", "error", err}
		if key != "" {
			// The blob stays behind unreferenced.
			attrs = append(attrs, "orphaned_key", key)
		}
		c.logger.Error("create failure", attrs...)
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}
	if note != nil {
		c.logger.Info("note created", "id", note.ID, "image", key)
	}

	c.form.Reset()
	_ = c.Refresh(ctx) // logged inside; the note exists regardless
	return nil
}

// DeleteNote removes a record and refetches. Any image the note referenced
// is left in the blob store.
func (c *Controller) DeleteNote(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		c.logger.Error("delete failure", "op", "delete", "id", id, "error", err)
		return fmt.Errorf("%w %s: %w", ErrDelete, id, err)
	}
	c.logger.Info("note deleted", "id", id)

	_ = c.Refresh(ctx)
	return nil
}

// ImageURL asks the blob store for a fresh location for key.
func (c *Controller) ImageURL(ctx context.Context, key string) (string, error) {
	url, err := c.blobs.URL(ctx, key)
	if err != nil {
		c.logger.Warn("image url failure", "key", key, "error", err)
		return "", fmt.Errorf("image url %s: %w", key, err)
	}
	return url, nil
}

// Lookup finds a note in the current list by full ID or ID prefix.
func (c *Controller) Lookup(prefix string) (*models.Note, error) {
	snap := c.cache.Load()
	for _, n := range snap.notes {
		if n.ID == prefix {
			cp := *n
			return &cp, nil
		}
	}

	if len(prefix) < minPrefixLen {
		return nil, ErrPrefixTooShort
	}

	var matches []*models.Note
	for _, n := range snap.notes {
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		return nil, gateway.ErrNoteNotFound
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
	cp := *matches[0]
	return &cp, nil
}

// storageKey derives a blob key whose timestamp part never repeats for
// this controller, even for uploads within the same millisecond.
func (c *Controller) storageKey(filename string) string {
	c.keyMu.Lock()
	stamp := c.now().UnixMilli()
	if stamp <= c.lastStamp {
		stamp = c.lastStamp + 1
	}
	c.lastStamp = stamp
	c.keyMu.Unlock()

	return StorageKey(stamp, filename)
}
