package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maniprasoon/Log-File-Analyzer/core"
	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/internal/outwriter"
	"github.com/maniprasoon/Log-File-Analyzer/internal/source"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// analyzeCmd streams a log source through the analysis pipeline.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [log-path]",
	Short: "Analyze a server access log and report error patterns.",
	Long: `Stream a server access log through the parser and report error rates,
top offender addresses, method distribution and hourly failure patterns.

The log source may be a plain file, a .gz file or an s3://bucket/key URI.
Lines that match neither the strict format nor the lenient fallback are
counted as skipped, never fatal. Results are stored for later comparison
via the history commands unless the store backend is none.

Examples:
  # Analyze the default log location
  loganalyzer analyze

  # Analyze a specific file with four workers
  loganalyzer analyze /var/log/access.log --workers 4

  # Treat additional status codes as errors
  loganalyzer analyze --error-codes 400,404,500,418

  # Export findings to CSV without storing the run
  loganalyzer analyze --output csv --output-file report.csv --store-backend none

  # Analyze a compressed object in S3
  loganalyzer analyze s3://logs-bucket/access.log.gz`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runStore, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = runStore.Close() }()

		var pipelineStore contract.RunStore
		if cfg.StoreBackend != schema.NoneBackend {
			pipelineStore = runStore
		}

		pipeline := core.NewPipeline(cfg, source.NewOpener(), pipelineStore)
		result, err := pipeline.Run(rootCtx, cfg.LogPath)
		if err != nil {
			contract.LogFatal("Cannot analyze log source", err)
		}

		if err := outwriter.WriteResult(result, cfg); err != nil {
			contract.LogFatal("Cannot write analysis output", err)
		}
	},
}
