// ABOUTME: Charm account commands grouped under 'sync'.
// ABOUTME: Status, manual sync, link/unlink and local reset for the charm backend.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/charm"
	"github.com/harper/notes/internal/config"
	"github.com/harper/notes/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect and control the Charm account",
	Long: `Manage the Charm account behind the charm backend and blob store.

Accounts are keyed by this machine's SSH keys.
With charm.auto_sync enabled, every write is pushed right away.

For example:
  notes sync status
  notes sync now
  notes sync link --host charm.example.com
  notes sync reset`,
}

var charmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account and last sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := app.cfg

		fmt.Fprintln(out, "Charm Sync Status")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "Backend:   %s (images: %s)\n", cfg.Backend, cfg.Blobs)
		fmt.Fprintf(out, "Host:      %s\n", valueOrNone(cfg.Charm.Host))
		if cfg.Charm.AutoSync {
			fmt.Fprintf(out, "Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Fprintf(out, "Auto-sync: %s\n", color.YellowString("disabled"))
		}
		if !usesCharm(cfg) {
			fmt.Fprintln(out, "\nNotes and images are not stored in Charm; nothing to sync.")
			return nil
		}

		client, err := app.charm()
		if err != nil {
			return err
		}
		st := client.Status()
		fmt.Fprintf(out, "Last sync: %s\n", formatSyncTime(st.LastSync))
		if st.Stale {
			fmt.Fprintf(out, "Freshness: %s\n", color.YellowString("stale"))
		}

		user, err := client.Account()
		fmt.Fprintln(out)
		if err != nil || user == nil {
			fmt.Fprintf(out, "Status:    %s\n", color.YellowString("not linked"))
			fmt.Fprintln(out, "\nRun 'notes sync link' to connect to Charm cloud.")
			return nil
		}
		fmt.Fprintf(out, "User ID:   %s\n", user.CharmID)
		fmt.Fprintf(out, "Name:      %s\n", valueOrNone(user.Name))
		fmt.Fprintf(out, "Status:    %s\n", color.GreenString("connected"))
		return nil
	},
}

var charmNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync with the Charm server immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := app.charm()
		if err != nil {
			return err
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Synced"))
		return nil
	},
}

var charmLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to a Charm account",
	Long: `Link this device to Charm cloud.

On first link you'll see a code to verify on another device, or a new
account is created. To keep a custom --host, set charm.host in config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")

		client, err := app.charm()
		if err != nil {
			return err
		}
		if host != "" {
			client, err = charm.NewClient(charm.Config{
				Host:           host,
				AutoSync:       app.cfg.Charm.AutoSync,
				StaleThreshold: app.cfg.Charm.StaleThreshold,
			}, charm.WithLogger(app.logger))
			if err != nil {
				return err
			}
		}

		user, err := client.Account()
		if err != nil {
			return fmt.Errorf("link failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success("Linked to Charm cloud"))
		fmt.Fprintf(out, "  User ID: %s\n", user.CharmID)
		return nil
	},
}

var charmUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Forget the Charm account on this device",
	Long: `Unlink this device from Charm cloud.

The local copy is dropped; your notes stay on the server and come back
after 'notes sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will disconnect this device from Charm cloud.\n\nType 'unlink' to confirm: ", "unlink") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		client, err := app.charm()
		if err != nil {
			return err
		}
		if err := client.Unlink(); err != nil {
			return fmt.Errorf("unlink failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Unlinked from Charm cloud"))
		return nil
	},
}

var charmResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the local copy of the charm database",
	Long:  `Drop the local KV database and re-sync from the cloud on the next command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will reset local sync data. Cloud data is kept.\n\nContinue? [y/N]: ", "y", "yes") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := charmkv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Local sync data reset"))
		return nil
	},
}

var charmWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all synced data, local and cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := "This will DELETE every note and image in Charm cloud and the local KV database.\n" +
			color.YellowString("This cannot be undone!") + "\n\nType 'wipe' to confirm: "
		if !confirm(cmd, prompt, "wipe") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		result, err := charmkv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  Deleted %d cloud backups, %d local files\n", result.CloudBackupsDeleted, result.LocalFilesDeleted)
		fmt.Fprintln(out, ui.Success("All sync data wiped"))
		return nil
	},
}

func init() {
	charmLinkCmd.Flags().String("host", "", "Charm server host (default: charm.host from config)")

	syncCmd.AddCommand(charmStatusCmd)
	syncCmd.AddCommand(charmNowCmd)
	syncCmd.AddCommand(charmLinkCmd)
	syncCmd.AddCommand(charmUnlinkCmd)
	syncCmd.AddCommand(charmResetCmd)
	syncCmd.AddCommand(charmWipeCmd)

	rootCmd.AddCommand(syncCmd)
}

func usesCharm(cfg *config.Config) bool {
	return cfg.Backend == config.BackendCharm || cfg.Blobs == config.BackendCharm
}

// confirm reads one line and reports whether it matches an accepted answer.
func confirm(cmd *cobra.Command, prompt string, accepted ...string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	return readAnswer(cmd.InOrStdin(), accepted...)
}

func readAnswer(in io.Reader, accepted ...string) bool {
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	for _, a := range accepted {
		if response == a {
			return true
		}
	}
	return false
}

func formatSyncTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04")
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
