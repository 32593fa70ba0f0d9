// Package cmd defines the command-line interface for loganalyzer.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("chunk-size", contract.DefaultChunkSize, "Number of log records buffered per batch")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent aggregation workers")
	rootCmd.PersistentFlags().StringSlice("error-codes", nil, "Status codes counted as errors (comma-separated)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultRecentLimit, "Number of stored runs to display")
	rootCmd.PersistentFlags().Int("keep-days", contract.DefaultKeepDays, "Retention window in days for history clear")
	rootCmd.PersistentFlags().String("addr", contract.DefaultServeAddr, "Dashboard listen address")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default .loganalyzer.yaml in . or $HOME)")

	// Make every flag available through Viper alongside file and env values
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Cannot bind flags", err)
	}

	// Local flags for the generate command
	generateCmd.Flags().IntVar(&generateCount, "count", defaultGenerateCount, "Number of log entries to generate")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 = time-based)")

	// Local flag for the migrate command
	historyMigrateCmd.Flags().IntVar(&migrateVersion, "target", -1, "Target migration version (-1 = latest, 0 = rollback all)")
}
