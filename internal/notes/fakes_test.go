package notes

import (
	"context"
	"fmt"
	"sync"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

// memGateway is an in-memory backend keeping insertion order.
type memGateway struct {
	mu        sync.Mutex
	notes     []*models.Note
	nextID    int
	createErr error
	created   []models.NoteInput
}

func (g *memGateway) List(ctx context.Context) ([]*models.Note, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*models.Note, len(g.notes))
	for i, n := range g.notes {
		cp := *n
		out[i] = &cp
	}
	return out, nil
}

func (g *memGateway) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	note := models.NewNote(fmt.Sprint(g.nextID), in)
	g.notes = append(g.notes, note)
	g.created = append(g.created, in)
	cp := *note
	return &cp, nil
}

func (g *memGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, n := range g.notes {
		if n.ID == id {
			g.notes = append(g.notes[:i], g.notes[i+1:]...)
			return nil
		}
	}
	return gateway.ErrNoteNotFound
}

// memBlobs records every Put in order.
type memBlobs struct {
	mu   sync.Mutex
	puts []string
	data map[string][]byte
}

func (b *memBlobs) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string][]byte)
	}
	b.puts = append(b.puts, key)
	b.data[key] = data
	return nil
}

func (b *memBlobs) URL(ctx context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.data[key]; !ok {
		return "", gateway.ErrBlobNotFound
	}
	return "mem://" + key, nil
}
