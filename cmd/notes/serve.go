// ABOUTME: Serve command running the browser surface.
// ABOUTME: Shuts down cleanly on interrupt.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/notes/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = app.cfg.Web.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// A missing bucket would otherwise surface only on the first upload.
		if app.bucket != nil {
			if err := app.bucket.CheckBucket(ctx); err != nil {
				return err
			}
		}

		server := web.New(app.ctrl, app.session, app.logger)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: web.addr from config)")
	rootCmd.AddCommand(serveCmd)
}
