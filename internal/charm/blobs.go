// ABOUTME: Blob store backed by Charm KV storage
// ABOUTME: Uses type-prefixed keys (blob:key) with base64 blob data

package charm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

const (
	// BlobPrefix is the key prefix for blobs.
	BlobPrefix = "blob:"
)

// BlobData represents an uploaded file stored in charm KV.
type BlobData struct {
	Key       string `json:"key"`
	MimeType  string `json:"mime_type"`
	Data      string `json:"data"` // base64-encoded
	CreatedAt int64  `json:"created_at"`
}

// newBlobData encodes raw bytes for storage under key.
func newBlobData(key string, data []byte) *BlobData {
	return &BlobData{
		Key:       key,
		MimeType:  models.MimeTypeFor(key),
		Data:      base64.StdEncoding.EncodeToString(data),
		CreatedAt: time.Now().Unix(),
	}
}

// DataURL renders the stored blob as a data: URI. The payload is already
// base64 so it is not decoded and re-encoded.
func (b *BlobData) DataURL() (string, error) {
	if _, err := base64.StdEncoding.DecodeString(b.Data); err != nil {
		return "", fmt.Errorf("decode blob data: %w", err)
	}
	return "data:" + b.MimeType + ";base64," + b.Data, nil
}

// blobKey returns the key for a blob.
func blobKey(key string) []byte {
	return []byte(BlobPrefix + key)
}

// Blobs implements gateway.BlobStore on the charm KV store. Blobs sync to
// the charm server along with the notes that reference them.
type Blobs struct {
	client *Client
}

// Blobs returns the blob store for this client.
func (c *Client) Blobs() *Blobs {
	return &Blobs{client: c}
}

// Put stores data under key, replacing any existing blob.
func (b *Blobs) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded, err := json.Marshal(newBlobData(key, data))
	if err != nil {
		return fmt.Errorf("marshal blob: %w", err)
	}
	return b.client.store(blobKey(key), encoded)
}

// URL returns the blob inline as a data: URI.
func (b *Blobs) URL(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := b.client.load(blobKey(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", gateway.ErrBlobNotFound
		}
		return "", err
	}

	var bd BlobData
	if err := json.Unmarshal(raw, &bd); err != nil {
		return "", fmt.Errorf("unmarshal blob: %w", err)
	}
	return bd.DataURL()
}
