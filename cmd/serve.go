package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/internal/dashboard"
)

// shutdownGrace bounds how long an in-flight request can delay exit.
const shutdownGrace = 5 * time.Second

// serveCmd runs the web dashboard over the run store.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a web dashboard over stored analysis runs.",
	Long: `Serve a web dashboard that shows stored analysis runs, with JSON
endpoints for recent runs and summary statistics.

Examples:
  # Serve on the default local address
  loganalyzer serve

  # Serve on all interfaces
  loganalyzer serve --addr 0.0.0.0:8080`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		server := dashboard.NewServer(runStore)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.ServeAddr)
		}()
		fmt.Printf("Dashboard listening on http://%s\n", cfg.ServeAddr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				contract.LogFatal("Dashboard server failed", err)
			}
		case <-sigCh:
			ctx, cancel := context.WithTimeout(rootCtx, shutdownGrace)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				contract.LogWarn("Dashboard shutdown incomplete", err)
			}
		}
	},
}
