// ABOUTME: Contracts for the remote note backend and blob storage.
// ABOUTME: Adapters in charm, db, rest and objstore implement these.

package gateway

import (
	"context"
	"errors"

	"github.com/harper/notes/internal/models"
)

//go:generate mockgen -source=gateway.go -destination=../mocks/gateway/mock_gateway.go -package=mock_gateway

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrBlobNotFound = errors.New("blob not found")
)

// NoteGateway is the remote CRUD backend for note records.
type NoteGateway interface {
	// List returns the full current set in the backend's native order.
	List(ctx context.Context) ([]*models.Note, error)

	// Create persists a new record and returns it with its assigned ID.
	Create(ctx context.Context, in models.NoteInput) (*models.Note, error)

	// Delete removes a record. Unknown IDs yield ErrNoteNotFound.
	Delete(ctx context.Context, id string) error
}

// BlobStore is key-addressed file storage.
type BlobStore interface {
	// Put stores data under key, overwriting any existing blob.
	Put(ctx context.Context, key string, data []byte) error

	// URL returns a location the blob can be fetched from. It may expire,
	// so callers should ask again each time they render.
	URL(ctx context.Context, key string) (string, error)
}
