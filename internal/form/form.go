// ABOUTME: Form state holder for the note being composed.
// ABOUTME: Accumulates field edits and hands a copy to the controller on submit.

package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harper/notes/internal/models"
)

var ErrUnknownField = errors.New("unknown form field")

// Field names an editable text field of the draft.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Draft is the in-progress note.
type Draft struct {
	Name        string
	Description string
	Image       *models.LocalFile
}

// Complete reports whether both text fields carry content.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Description) != ""
}

// IsEmpty reports whether the draft is at its default.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Description == "" && d.Image == nil
}

// Form owns the draft. It is safe for concurrent use.
type Form struct {
	mu    sync.Mutex
	draft Draft
}

func New() *Form {
	return &Form{}
}

// SetField replaces one text field, leaving the others untouched.
func (f *Form) SetField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldDescription:
		f.draft.Description = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetImage replaces the selected file. Nil clears the selection.
func (f *Form) SetImage(file *models.LocalFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Image = file
}

// Reset returns every field to empty.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = Draft{}
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}
