// ABOUTME: Add command for creating new notes.
// ABOUTME: Fills the form from flags or $EDITOR, then submits it.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/form"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/notes"
	"github.com/harper/notes/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new note",
	Long:  `Create a new note with the given name. The description comes from --description or $EDITOR; --image uploads a file alongside it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptionFlag, _ := cmd.Flags().GetString("description")
		imageFlag, _ := cmd.Flags().GetString("image")

		description := descriptionFlag
		if description == "" {
			var err error
			description, err = openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		f := app.ctrl.Form()
		if err := f.SetField(form.FieldName, args[0]); err != nil {
			return err
		}
		if err := f.SetField(form.FieldDescription, strings.TrimSpace(description)); err != nil {
			return err
		}
		if imageFlag != "" {
			image, err := models.ReadLocalFile(imageFlag)
			if err != nil {
				return err
			}
			f.SetImage(image)
		}

		if !f.Draft().Complete() {
			return errors.New("note name and description cannot be empty")
		}

		if err := app.ctrl.CreateNote(cmd.Context()); err != nil {
			if errors.Is(err, notes.ErrUpload) {
				return fmt.Errorf("image upload failed, note not created: %w", err)
			}
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Created note %q", args[0])))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "notes-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "note description (opens $EDITOR when empty)")
	addCmd.Flags().StringP("image", "i", "", "image file to attach")
	rootCmd.AddCommand(addCmd)
}
