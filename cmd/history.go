package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/internal/outwriter"
	"github.com/maniprasoon/Log-File-Analyzer/internal/parquet"
	"github.com/maniprasoon/Log-File-Analyzer/internal/store"
)

// migrateVersion is the target version for history migrate.
var migrateVersion = -1

// historyCmd groups operations on stored analysis runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage stored analysis runs.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// historyRecentCmd lists the most recent stored runs.
var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent stored analysis runs.",
	Long: `Show stored analysis runs, most recent first.

Examples:
  # Show the last ten runs
  loganalyzer history recent

  # Show more rows as JSON
  loganalyzer history recent --limit 50 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		runs, err := runStore.RecentRuns(cfg.RecentLimit)
		if err != nil {
			contract.LogFatal("Cannot load stored runs", err)
		}
		if err := outwriter.WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Cannot write history output", err)
		}
	},
}

// historyStatsCmd summarizes all stored runs.
var historyStatsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Summarize stored analysis runs.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		stats, err := runStore.Statistics()
		if err != nil {
			contract.LogFatal("Cannot load run statistics", err)
		}
		if err := outwriter.WriteStatistics(stats, cfg); err != nil {
			contract.LogFatal("Cannot write statistics output", err)
		}
	},
}

// historyClearCmd deletes stored runs outside the retention window.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete stored runs older than the retention window.",
	Long: `Delete stored analysis runs older than keep-days. A keep-days of
zero deletes every stored run.

Examples:
  # Keep the default thirty days of runs
  loganalyzer history clear

  # Delete everything
  loganalyzer history clear --keep-days 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		var olderThan time.Time
		if cfg.KeepDays > 0 {
			olderThan = time.Now().AddDate(0, 0, -cfg.KeepDays)
		}
		deleted, err := runStore.ClearRuns(olderThan)
		if err != nil {
			contract.LogFatal("Cannot clear stored runs", err)
		}
		fmt.Printf("Deleted %d stored runs\n", deleted)
	},
}

// historyExportCmd exports stored runs to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export <output-path>",
	Short: "Export stored runs to a Parquet file.",
	Long: `Export stored analysis runs to a Parquet file for downstream
analytics tools.

Examples:
  # Export the most recent runs
  loganalyzer history export runs.parquet

  # Export more rows
  loganalyzer history export runs.parquet --limit 200`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		runs, err := runStore.RecentRuns(cfg.RecentLimit)
		if err != nil {
			contract.LogFatal("Cannot load stored runs", err)
		}
		if err := parquet.WriteRunsParquet(runs, args[0]); err != nil {
			contract.LogFatal("Cannot export runs to parquet", err)
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), args[0])
	},
}

// historyMigrateCmd runs schema migrations for the run store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the run store.",
	Long: `Run schema migrations for the run store database.

Examples:
  # Migrate to the latest version
  loganalyzer history migrate

  # Roll back all migrations
  loganalyzer history migrate --target 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.MigrateRuns(cfg.StoreBackend, cfg.StoreDBConnect, migrateVersion); err != nil {
			contract.LogFatal("Cannot run migrations", err)
		}
	},
}
