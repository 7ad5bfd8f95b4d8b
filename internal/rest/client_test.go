package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "secret")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_List(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		handler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want      []*models.Note
		wantError bool
	}{
		{
			name: "returns items in backend order",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/notes", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(listResponse{Items: []noteRecord{
					{ID: "2", Name: "B", Description: "b", CreatedAt: created},
					{ID: "1", Name: "A", Description: "a", Image: "1_x.png", CreatedAt: created},
				}})
			},
			want: []*models.Note{
				{ID: "2", Name: "B", Description: "b", CreatedAt: created},
				{ID: "1", Name: "A", Description: "a", Image: "1_x.png", CreatedAt: created},
			},
		},
		{
			name: "empty list",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"items":[]}`))
			},
			want: []*models.Note{},
		},
		{
			name: "server error",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			})

			got, err := client.List(context.Background())
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].ID, got[i].ID)
				assert.Equal(t, tt.want[i].Name, got[i].Name)
				assert.Equal(t, tt.want[i].Description, got[i].Description)
				assert.Equal(t, tt.want[i].Image, got[i].Image)
				assert.True(t, tt.want[i].CreatedAt.Equal(got[i].CreatedAt))
			}
		})
	}
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notes", r.URL.Path)

		var body createRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, createRequest{Name: "A", Description: "B", Image: "1_x.png"}, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(noteRecord{ID: "n-1", Name: body.Name, Description: body.Description, Image: body.Image})
	})

	note, err := client.Create(context.Background(), models.NoteInput{Name: "A", Description: "B", Image: "1_x.png"})
	require.NoError(t, err)
	assert.Equal(t, "n-1", note.ID)
	assert.Equal(t, "1_x.png", note.Image)
}

func TestClient_CreateRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name is required"}`))
	})

	_, err := client.Create(context.Background(), models.NoteInput{Name: "A", Description: "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantError error
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "unknown id", status: http.StatusNotFound, wantError: gateway.ErrNoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/notes/abc", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			err := client.Delete(context.Background(), "abc")
			if tt.wantError != nil {
				assert.True(t, errors.Is(err, tt.wantError), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
