// ABOUTME: Blob store operations on the local SQLite store.
// ABOUTME: URLs are self-contained data: URIs so no server is needed.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, mime_type, data, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			mime_type = excluded.mime_type,
			data = excluded.data`,
		key, models.MimeTypeFor(key), data, time.Now(),
	)
	return err
}

func (s *Store) URL(ctx context.Context, key string) (string, error) {
	var mimeType string
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT mime_type, data FROM blobs WHERE key = ?`, key,
	).Scan(&mimeType, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", gateway.ErrBlobNotFound
	}
	if err != nil {
		return "", err
	}
	return models.DataURL(mimeType, data), nil
}
