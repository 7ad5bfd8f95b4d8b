// ABOUTME: Browser surface: one page with the create form and note cards.
// ABOUTME: Failures are logged by the controller; the page just re-renders.

package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/notes"
	"github.com/harper/notes/internal/session"
)

const usernameKey = "username"

type Server struct {
	app     *fiber.App
	notes   *notes.Controller
	session session.Session
	logger  *slog.Logger

	// submitMu keeps one request's fill-and-submit of the shared form from
	// interleaving with another's.
	submitMu sync.Mutex
}

func New(ctrl *notes.Controller, sess session.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             16 * 1024 * 1024,
		}),
		notes:   ctrl,
		session: sess,
		logger:  logger,
	}
	s.app.Use(recover.New())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.requireSession, s.handleIndex)
	s.app.Post("/notes", s.requireSession, s.handleCreate)
	s.app.Post("/notes/:id/delete", s.requireSession, s.handleDelete)
	s.app.Get("/images/*", s.requireSession, s.handleImage)
	s.app.Post("/signout", s.handleSignOut)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("web server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// requireSession keeps the note UI behind a live session. A signed-out
// session gets the signed-out page with 401 on every note route.
func (s *Server) requireSession(c *fiber.Ctx) error {
	username, err := s.session.Username()
	if errors.Is(err, session.ErrSignedOut) {
		c.Status(fiber.StatusUnauthorized)
		return render(c, signedOutTemplate, nil)
	}
	if err != nil {
		s.logger.Warn("session lookup failed", "error", err)
	}
	c.Locals(usernameKey, username)
	return c.Next()
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	username, _ := c.Locals(usernameKey).(string)

	// The page fetches on every load, like a freshly mounted view.
	_ = s.notes.Refresh(c.UserContext())

	draft := s.notes.Form().Draft()
	data := pageData{
		Username:    username,
		Name:        draft.Name,
		Description: draft.Description,
	}
	for _, n := range s.notes.Notes() {
		data.Notes = append(data.Notes, noteView{
			ID:          n.ID,
			Name:        n.Name,
			Description: n.Description,
			Image:       n.Image,
		})
	}
	return render(c, pageTemplate, data)
}

func (s *Server) handleCreate(c *fiber.Ctx) error {
	image, err := readImage(c)
	if err != nil {
		s.logger.Warn("image upload unreadable", "error", err)
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	f := s.notes.Form()
	if err := f.SetField(form.FieldName, c.FormValue("name")); err != nil {
		return err
	}
	if err := f.SetField(form.FieldDescription, c.FormValue("description")); err != nil {
		return err
	}
	f.SetImage(image)

	// Errors are logged by the controller. The draft survives a failure
	// and the form shows it again.
	_ = s.notes.CreateNote(c.UserContext())
	return c.Redirect("/", fiber.StatusSeeOther)
}

// readImage returns the uploaded file, or nil when none was chosen.
func readImage(c *fiber.Ctx) (*models.LocalFile, error) {
	header, err := c.FormFile("image")
	if err != nil || header.Size == 0 || header.Filename == "" {
		return nil, nil //nolint:nilerr // No file selected
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return models.NewLocalFile(header.Filename, data), nil
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	_ = s.notes.DeleteNote(c.UserContext(), c.Params("id"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// handleImage resolves a fresh URL for the key on every request. Inline
// data: URIs are served directly since browsers will not follow a
// redirect to one.
func (s *Server) handleImage(c *fiber.Ctx) error {
	key := c.Params("*")
	url, err := s.notes.ImageURL(c.UserContext(), key)
	if errors.Is(err, gateway.ErrBlobNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		return c.SendStatus(fiber.StatusBadGateway)
	}

	if strings.HasPrefix(url, "data:") {
		mimeType, data, err := decodeDataURL(url)
		if err != nil {
			s.logger.Warn("bad data url", "key", key, "error", err)
			return c.SendStatus(fiber.StatusBadGateway)
		}
		c.Set(fiber.HeaderContentType, mimeType)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(data)
	}
	return c.Redirect(url, fiber.StatusFound)
}

func (s *Server) handleSignOut(c *fiber.Ctx) error {
	if err := s.session.SignOut(c.UserContext()); err != nil {
		s.logger.Error("sign out failed", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return render(c, signedOutTemplate, nil)
}

func render(c *fiber.Ctx, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// decodeDataURL splits a base64 data: URI into its MIME type and bytes.
func decodeDataURL(url string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return "", nil, errors.New("missing data separator")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, errors.New("only base64 data urls are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mimeType, data, nil
}
