package objstore

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, expiry time.Duration) *Store {
	t.Helper()
	// A fixed region lets presigning work without contacting the server.
	store, err := New(Config{
		Endpoint:  "localhost:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "notes",
		Region:    "us-east-1",
		URLExpiry: expiry,
	})
	require.NoError(t, err)
	return store
}

func TestNewDefaultsExpiry(t *testing.T) {
	store := newTestStore(t, 0)
	assert.Equal(t, DefaultURLExpiry, store.expiry)
}

func TestPresign(t *testing.T) {
	store := newTestStore(t, 5*time.Minute)

	raw, err := store.presign(context.Background(), "1700000000000_x.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/notes/1700000000000_x.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no such key", err: minio.ErrorResponse{Code: "NoSuchKey"}, want: true},
		{name: "access denied", err: minio.ErrorResponse{Code: "AccessDenied"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
