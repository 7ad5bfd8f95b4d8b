// ABOUTME: Show and image commands for a single note.
// ABOUTME: Renders the description with glamour and fetches a fresh image URL.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/ui"
)

var showCmd = &cobra.Command{
	Use:         "show <id-prefix>",
	Short:       "Show a note",
	Long:        `Display a note with its rendered description and a freshly fetched image URL.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationRefresh: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireNotes(); err != nil {
			return err
		}
		note, err := app.ctrl.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, ui.FormatNoteHeader(note))

		content, _ := ui.FormatNoteContent(note.Description)
		fmt.Fprint(out, content)

		if note.HasImage() {
			url, err := app.ctrl.ImageURL(cmd.Context(), note.Image)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("image unavailable: %v", err)))
				return nil
			}
			fmt.Fprint(out, ui.FormatImageURL(url))
		}
		return nil
	},
}

var imageCmd = &cobra.Command{
	Use:         "image <id-prefix>",
	Short:       "Print a fresh URL for a note's image",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationRefresh: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireNotes(); err != nil {
			return err
		}
		note, err := app.ctrl.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if !note.HasImage() {
			return fmt.Errorf("note %s has no image", ui.ShortID(note.ID))
		}

		url, err := app.ctrl.ImageURL(cmd.Context(), note.Image)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(imageCmd)
}
