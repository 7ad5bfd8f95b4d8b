package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/notes/internal/db"
	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/notes"
	"github.com/harper/notes/internal/session"
)

type fixture struct {
	server  *Server
	store   *db.Store
	ctrl    *notes.Controller
	session *session.Static
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := notes.NewController(store, store, form.New(), notes.WithLogger(logger))
	sess := session.NewStatic("harper")

	return &fixture{
		server:  New(ctrl, sess, logger),
		store:   store,
		ctrl:    ctrl,
		session: sess,
	}
}

func (f *fixture) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := f.server.App().Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/notes", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestIndexShowsWelcomeAndNotes(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Create(context.Background(), models.NoteInput{Name: "Groceries", Description: "milk"})
	require.NoError(t, err)

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Welcome, harper")
	assert.Contains(t, body, "Groceries")
	assert.Contains(t, body, "milk")
}

func TestCreateNoteWithImage(t *testing.T) {
	f := newFixture(t)
	png := []byte("0123456789")

	resp, _ := f.do(t, multipartRequest(t, map[string]string{"name": "A", "description": "B"}, "x.png", png))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	list := f.ctrl.Notes()
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Name)
	assert.True(t, strings.HasSuffix(list[0].Image, "_x.png"))
	assert.True(t, f.ctrl.Form().Draft().IsEmpty())

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/images/"+list[0].Image, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, string(png), body)
}

func TestCreateIncompleteKeepsDraft(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, multipartRequest(t, map[string]string{"name": "only a name", "description": "  "}, "", nil))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, body := f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, body, `value="only a name"`)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep, err := f.store.Create(ctx, models.NoteInput{Name: "keep", Description: "k"})
	require.NoError(t, err)
	drop, err := f.store.Create(ctx, models.NoteInput{Name: "drop", Description: "d"})
	require.NoError(t, err)

	resp, _ := f.do(t, httptest.NewRequest(http.MethodPost, "/notes/"+url.PathEscape(drop.ID)+"/delete", nil))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list := f.ctrl.Notes()
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestDeleteUnknownNoteStillRedirects(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, httptest.NewRequest(http.MethodPost, "/notes/missing/delete", nil))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestImageNotFound(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, httptest.NewRequest(http.MethodPost, "/signout", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed out")

	_, body = f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, body, "Signed out")
	assert.NotContains(t, body, "Create Note")
}

func TestSignedOutBlocksNoteRoutes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing, err := f.store.Create(ctx, models.NoteInput{Name: "keep", Description: "k"})
	require.NoError(t, err)
	require.NoError(t, f.store.Put(ctx, "1_x.png", []byte("png")))
	require.NoError(t, f.session.SignOut(ctx))

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "index", req: httptest.NewRequest(http.MethodGet, "/", nil)},
		{name: "create", req: multipartRequest(t, map[string]string{"name": "A", "description": "B"}, "", nil)},
		{name: "delete", req: httptest.NewRequest(http.MethodPost, "/notes/"+url.PathEscape(existing.ID)+"/delete", nil)},
		{name: "image", req: httptest.NewRequest(http.MethodGet, "/images/1_x.png", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := f.do(t, tt.req)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, body, "Signed out")
		})
	}

	list, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, existing.ID, list[0].ID)
}

func TestConcurrentCreatesAllLand(t *testing.T) {
	f := newFixture(t)

	const n = 20
	reqs := make([]*http.Request, n)
	for i := range reqs {
		reqs[i] = multipartRequest(t, map[string]string{"name": fmt.Sprintf("note %d", i), "description": "d"}, "", nil)
	}

	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.server.App().Test(req, -1)
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
				_ = resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	list, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, n)
	assert.True(t, f.ctrl.Form().Draft().IsEmpty())
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestDecodeDataURL(t *testing.T) {
	mimeType, data, err := decodeDataURL(models.DataURL("image/png", []byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("png"), data)

	_, _, err = decodeDataURL("data:text/plain,hello")
	assert.Error(t, err)
}
