// ABOUTME: Tests for blob storage on SQLite.
// ABOUTME: Covers put, overwrite and data URL generation.

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

func TestPutAndURL(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "1_x.png", []byte("png")); err != nil {
		t.Fatalf("failed to put blob: %v", err)
	}

	url, err := store.URL(ctx, "1_x.png")
	if err != nil {
		t.Fatalf("failed to get url: %v", err)
	}
	if url != "data:image/png;base64,cG5n" {
		t.Errorf("unexpected url %q", url)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_ = store.Put(ctx, "k.txt", []byte("one"))
	if err := store.Put(ctx, "k.txt", []byte("two")); err != nil {
		t.Fatalf("failed to overwrite blob: %v", err)
	}

	url, _ := store.URL(ctx, "k.txt")
	if url != models.DataURL(models.MimeTypeFor("k.txt"), []byte("two")) {
		t.Errorf("expected overwritten data, got %q", url)
	}
}

func TestURLNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.URL(context.Background(), "missing")
	if !errors.Is(err, gateway.ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
}
