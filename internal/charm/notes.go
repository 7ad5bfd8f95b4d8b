// ABOUTME: Note gateway backed by Charm KV storage
// ABOUTME: Uses type-prefixed keys (note:uuid) with JSON records

package charm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

const (
	// NotePrefix is the key prefix for notes.
	NotePrefix = "note:"
)

// NoteData represents a note stored in charm KV.
type NoteData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CreatedAt   int64  `json:"created_at"` // unix millis
}

// ToModel converts NoteData to a models.Note.
func (n *NoteData) ToModel() *models.Note {
	return &models.Note{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Image:       n.Image,
		CreatedAt:   time.UnixMilli(n.CreatedAt),
	}
}

// FromModel creates NoteData from a models.Note.
func FromModel(note *models.Note) *NoteData {
	return &NoteData{
		ID:          note.ID,
		Name:        note.Name,
		Description: note.Description,
		Image:       note.Image,
		CreatedAt:   note.CreatedAt.UnixMilli(),
	}
}

// noteKey returns the key for a note.
func noteKey(id string) []byte {
	return []byte(NotePrefix + id)
}

// Notes implements gateway.NoteGateway on the charm KV store.
type Notes struct {
	client *Client
}

// Notes returns the note gateway for this client.
func (c *Client) Notes() *Notes {
	return &Notes{client: c}
}

// List returns every note, newest first.
func (n *Notes) List(ctx context.Context) ([]*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*NoteData
	prefix := []byte(NotePrefix)
	err := n.client.view(func(k *kv.KV) error {
		return k.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = true
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				err := it.Item().Value(func(val []byte) error {
					var nd NoteData
					if err := json.Unmarshal(val, &nd); err != nil {
						return nil // Skip invalid records
					}
					records = append(records, &nd)
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	sortNewestFirst(records)

	result := make([]*models.Note, 0, len(records))
	for _, nd := range records {
		result = append(result, nd.ToModel())
	}
	return result, nil
}

// sortNewestFirst orders records by creation time descending. Ties fall
// back to the ID so the order is stable between calls.
func sortNewestFirst(records []*NoteData) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}

// Create stores a new note under a fresh UUID.
func (n *Notes) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	note := models.NewNote(uuid.New().String(), in)
	encoded, err := json.Marshal(FromModel(note))
	if err != nil {
		return nil, fmt.Errorf("marshal note: %w", err)
	}
	if err := n.client.store(noteKey(note.ID), encoded); err != nil {
		return nil, fmt.Errorf("store note: %w", err)
	}
	return note, nil
}

// Delete removes a note. The existence check and the delete share one
// write transaction.
func (n *Notes) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return n.client.update(func(k *kv.KV) error {
		if _, err := k.Get(noteKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return gateway.ErrNoteNotFound
			}
			return err
		}
		return k.Delete(noteKey(id))
	})
}
