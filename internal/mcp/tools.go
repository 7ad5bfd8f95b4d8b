// ABOUTME: MCP tools for listing, creating and deleting notes.
// ABOUTME: Every tool goes through the note lifecycle controller.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/notes"
)

func (s *Server) registerTools() {
	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "Fetch and list all notes",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListNotes)

	// create_note
	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a note with a name, description and optional image",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Note name"},
				"description": {"type": "string", "description": "Note description"},
				"image_path": {"type": "string", "description": "Path of an image file to upload"},
				"image_filename": {"type": "string", "description": "Filename for image_data"},
				"image_data": {"type": "string", "description": "Base64 encoded image"}
			},
			"required": ["name", "description"]
		}`),
	}, s.handleCreateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// image_url
	s.server.AddTool(&mcp.Tool{
		Name:        "image_url",
		Description: "Get a fresh URL for a note's image",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleImageURL)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// Tool handlers.
func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.notes.Refresh(ctx); err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}

	data, _ := json.MarshalIndent(s.notes.Notes(), "", "  ")
	return textResult(string(data)), nil
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		ImagePath     string `json:"image_path"`
		ImageFilename string `json:"image_filename"`
		ImageData     string `json:"image_data"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	image, err := loadImage(params.ImagePath, params.ImageFilename, params.ImageData)
	if err != nil {
		return errorResult("failed to read image: %v", err), nil
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	f := s.notes.Form()
	f.Reset()
	_ = f.SetField(form.FieldName, params.Name)
	_ = f.SetField(form.FieldDescription, params.Description)
	f.SetImage(image)

	if !f.Draft().Complete() {
		f.Reset()
		return errorResult("note name and description cannot be empty"), nil
	}

	if err := s.notes.CreateNote(ctx); err != nil {
		f.Reset()
		switch {
		case errors.Is(err, notes.ErrUpload):
			return errorResult("image upload failed, note not created: %v", err), nil
		default:
			return errorResult("failed to create note: %v", err), nil
		}
	}

	return textResult(fmt.Sprintf("Created note %q (%d notes total)", params.Name, len(s.notes.Notes()))), nil
}

// loadImage builds the upload from a path or inline base64 data. Neither
// means no image.
func loadImage(path, filename, data string) (*models.LocalFile, error) {
	switch {
	case path != "":
		return models.ReadLocalFile(path)
	case data != "":
		if filename == "" {
			return nil, errors.New("image_filename is required with image_data")
		}
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decode image_data: %w", err)
		}
		return models.NewLocalFile(filename, raw), nil
	default:
		return nil, nil
	}
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.lookup(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	if err := s.notes.DeleteNote(ctx, note.ID); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Deleted note %s", note.ID)), nil
}

func (s *Server) handleImageURL(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.lookup(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if !note.HasImage() {
		return errorResult("note %s has no image", note.ID), nil
	}

	url, err := s.notes.ImageURL(ctx, note.Image)
	if err != nil {
		return errorResult("failed to get image url: %v", err), nil
	}
	return textResult(url), nil
}

// lookup refreshes so a note created elsewhere can be found by prefix.
func (s *Server) lookup(ctx context.Context, id string) (*models.Note, error) {
	if err := s.notes.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.notes.Lookup(id)
}
