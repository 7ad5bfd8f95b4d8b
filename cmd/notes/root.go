// ABOUTME: Root command: global flags, logging and backend wiring.
// ABOUTME: Every subcommand runs against the controller built here.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/config"
	"github.com/harper/notes/internal/ui"
)

const (
	// annotationRefresh marks commands that read the note list up front.
	annotationRefresh = "notes/refresh"
	// annotationNoSetup marks commands that need no backend.
	annotationNoSetup = "notes/no-setup"
)

var (
	cfgFile string
	verbose bool

	// app is rebuilt for every command run.
	app *App
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "A small note-taking app",
	Long: `Create, list and delete notes with a name, a description and an optional image.

Notes live in a backend chosen in config.yaml: Charm Cloud, a local SQLite
file or a hosted REST API. Images go to Charm, SQLite or an S3-compatible
bucket.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Annotations[annotationNoSetup] == "true" {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.Log.SlogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		app, err = newApp(cfg, logger)
		if err != nil {
			return err
		}

		if cmd.Annotations[annotationRefresh] == "true" {
			app.refreshErr = app.ctrl.Refresh(cmd.Context())
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/notes/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		if app != nil {
			_ = app.Close()
			app = nil
		}
	}
	return err
}
