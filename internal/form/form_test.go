// ABOUTME: Tests for the form state holder.
// ABOUTME: Covers field edits, image selection and reset.

package form

import (
	"testing"

	"github.com/harper/notes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormIsEmpty(t *testing.T) {
	f := New()
	assert.True(t, f.Draft().IsEmpty())
	assert.False(t, f.Draft().Complete())
}

func TestSetFieldReplacesOnlyThatField(t *testing.T) {
	f := New()
	require.NoError(t, f.SetField(FieldName, "Groceries"))
	require.NoError(t, f.SetField(FieldDescription, "milk"))
	require.NoError(t, f.SetField(FieldName, "Shopping"))

	d := f.Draft()
	assert.Equal(t, "Shopping", d.Name)
	assert.Equal(t, "milk", d.Description)
	assert.Nil(t, d.Image)
}

func TestSetFieldUnknown(t *testing.T) {
	f := New()
	err := f.SetField(Field("image"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.True(t, f.Draft().IsEmpty())
}

func TestSetImageAndReset(t *testing.T) {
	f := New()
	file := models.NewLocalFile("x.png", []byte("0123456789"))
	f.SetImage(file)
	require.NoError(t, f.SetField(FieldName, "A"))

	assert.Same(t, file, f.Draft().Image)

	f.Reset()
	assert.True(t, f.Draft().IsEmpty())
}

func TestDraftComplete(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{name: "both set", draft: Draft{Name: "A", Description: "B"}, want: true},
		{name: "missing name", draft: Draft{Description: "B"}, want: false},
		{name: "missing description", draft: Draft{Name: "A"}, want: false},
		{name: "whitespace only", draft: Draft{Name: "  ", Description: "B"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.Complete())
		})
	}
}
