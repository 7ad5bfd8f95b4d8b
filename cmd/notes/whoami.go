// ABOUTME: Session commands: show the signed-in user and sign out.
// ABOUTME: The greeting matches what the web page shows.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := app.session.Username()
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.Welcome(name))
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out",
	Long:  `End the session. With the charm backend this drops the local copy of your data; it stays on the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.session.SignOut(cmd.Context()); err != nil {
			return fmt.Errorf("sign out failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Signed out"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(signoutCmd)
}
