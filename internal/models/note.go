// ABOUTME: Note model representing a titled note with an optional image.
// ABOUTME: Records are owned by the remote backend; IDs are assigned there.

package models

import "time"

// Note is a record as returned by the note gateway.
type Note struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Image       string    `json:"image,omitempty" yaml:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created"`
}

// HasImage reports whether the note references a stored blob.
func (n *Note) HasImage() bool {
	return n.Image != ""
}

// NoteInput holds the fields submitted when creating a note.
// Image is a blob key that has already been uploaded, or empty.
type NoteInput struct {
	Name        string
	Description string
	Image       string
}

// NewNote builds a note from input with the given ID, stamped now.
// Gateways use it when they assign identifiers themselves.
func NewNote(id string, in NoteInput) *Note {
	return &Note{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   time.Now(),
	}
}
