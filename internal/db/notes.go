// ABOUTME: Note gateway operations on the local SQLite store.
// ABOUTME: Lists in insertion order and assigns UUIDs on create.

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

func (s *Store) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, image, created_at FROM notes ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Name, &note.Description, &note.Image, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Store) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	note := models.NewNote(uuid.New().String(), in)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, name, description, image, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Name, note.Description, note.Image, note.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return gateway.ErrNoteNotFound
	}
	return nil
}
