// ABOUTME: Remove command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:         "rm <id-prefix>",
	Short:       "Remove a note",
	Long:        `Delete a note. Its image, if any, stays in the blob store.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationRefresh: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if err := app.requireNotes(); err != nil {
			return err
		}
		note, err := app.ctrl.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		if !force {
			if !confirm(cmd, ui.FormatDeletePrompt(note), "y", "yes") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := app.ctrl.DeleteNote(cmd.Context(), note.ID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Deleted note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
