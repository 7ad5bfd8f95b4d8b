// ABOUTME: List command for displaying notes.
// ABOUTME: Prints the fetched list in the backend's order.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/ui"
)

var listCmd = &cobra.Command{
	Use:         "list",
	Aliases:     []string{"ls"},
	Short:       "List notes",
	Annotations: map[string]string{annotationRefresh: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if app.refreshErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("could not fetch notes: %v", app.refreshErr)))
		}

		notes := app.ctrl.Notes()
		if len(notes) == 0 {
			fmt.Fprint(out, ui.FormatEmptyList())
			return nil
		}

		for _, note := range notes {
			fmt.Fprint(out, ui.FormatNoteListItem(note))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
