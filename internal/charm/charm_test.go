// ABOUTME: Tests for charm KV record encoding and ordering.
// ABOUTME: Pure helpers only; KV access needs a linked charm account.

package charm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	charmproto "github.com/charmbracelet/charm/proto"

	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/session"
)

func TestNoteDataRoundTrip(t *testing.T) {
	created := time.UnixMilli(1700000000123)
	note := &models.Note{
		ID:          "9b2f0c1e-0000-4000-8000-000000000001",
		Name:        "A",
		Description: "B",
		Image:       "1700000000123_x.png",
		CreatedAt:   created,
	}

	got := FromModel(note).ToModel()

	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, note.Name, got.Name)
	assert.Equal(t, note.Description, got.Description)
	assert.Equal(t, note.Image, got.Image)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestNoteKey(t *testing.T) {
	assert.Equal(t, []byte("note:abc"), noteKey("abc"))
	assert.Equal(t, []byte("blob:1_x.png"), blobKey("1_x.png"))
}

func TestSortNewestFirst(t *testing.T) {
	records := []*NoteData{
		{ID: "b", CreatedAt: 1},
		{ID: "c", CreatedAt: 3},
		{ID: "a", CreatedAt: 1},
	}

	sortNewestFirst(records)

	ids := []string{records[0].ID, records[1].ID, records[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestBlobDataURL(t *testing.T) {
	bd := newBlobData("1_x.png", []byte("png"))

	url, err := bd.DataURL()
	require.NoError(t, err)
	assert.Equal(t, models.DataURL("image/png", []byte("png")), url)
}

func TestBlobDataURLCorrupt(t *testing.T) {
	bd := &BlobData{Key: "k", MimeType: "image/png", Data: "not base64!"}

	_, err := bd.DataURL()
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "harper", displayName(&charmproto.User{Name: "harper", CharmID: "id-1"}))
	assert.Equal(t, "id-1", displayName(&charmproto.User{CharmID: "id-1"}))
	assert.Equal(t, "", displayName(nil))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.True(t, cfg.AutoSync)
	assert.Zero(t, cfg.StaleThreshold)
}

func TestAccountSessionEndsAfterSignOut(t *testing.T) {
	s := &accountSession{client: &Client{}}
	s.signedOut.Store(true)

	name, err := s.Username()
	assert.ErrorIs(t, err, session.ErrSignedOut)
	assert.Empty(t, name)
}

func TestAccountSignOutHonoursCancelledContext(t *testing.T) {
	s := &accountSession{client: &Client{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SignOut(ctx), context.Canceled)
	assert.False(t, s.signedOut.Load())
}
