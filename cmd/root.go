package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maniprasoon/Log-File-Analyzer/core/agg"
	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/internal/store"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "loganalyzer",
	Short:              "Analyze server access logs for error patterns.",
	Long:               `Loganalyzer streams server access logs and reports error rates, offender addresses and failure patterns.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".loganalyzer") // Name of config file (without extension)
		viper.SetConfigType("yaml")         // We'll use YAML format
		viper.AddConfigPath(".")            // Look in the current directory
		viper.AddConfigPath("$HOME")        // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("LOGANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("chunk-size", contract.DefaultChunkSize)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("error-codes", agg.DefaultErrorCodes)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("limit", contract.DefaultRecentLimit)
	viper.SetDefault("keep-days", contract.DefaultKeepDays)
	viper.SetDefault("addr", contract.DefaultServeAddr)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.LogPathStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// openStore creates the run store for the configured backend. Callers
// own the returned store and must close it.
func openStore() (contract.RunStore, error) {
	return store.NewRunStore(cfg.StoreBackend, cfg.StoreDBConnect)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
