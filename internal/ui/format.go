// ABOUTME: Terminal UI formatting for notes output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notes/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

const shortIDLen = 6

// ShortID trims an ID to the prefix shown in listings.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func Welcome(username string) string {
	return fmt.Sprintf("Welcome, %s\n", bold(username))
}

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note.ID)), bold(note.Name)))
	sb.WriteString(fmt.Sprintf("         %s\n", firstLine(note.Description)))

	if note.HasImage() {
		sb.WriteString(fmt.Sprintf("         %s %s\n", faint("Image:"), cyan(note.Image)))
	}

	return sb.String()
}

func FormatEmptyList() string {
	return faint("No notes yet. Create one with: notes add <name> -d <description>") + "\n"
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Name)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	if !note.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format("2006-01-02 15:04"))))
	}
	if note.HasImage() {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Image:"), cyan(note.Image)))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormatImageURL shows a fetched image location, eliding long data: URIs.
func FormatImageURL(url string) string {
	if strings.HasPrefix(url, "data:") && len(url) > 80 {
		url = url[:77] + "..."
	}
	return fmt.Sprintf("%s %s\n", faint("URL:"), cyan(url))
}

func FormatDeletePrompt(note *models.Note) string {
	return fmt.Sprintf("Delete note %q (%s)? [y/N] ", note.Name, ShortID(note.ID))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
