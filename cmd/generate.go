package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/internal/gen"
)

// defaultGenerateCount mirrors a day of traffic at one request every
// two seconds.
const defaultGenerateCount = 50000

var (
	generateCount = defaultGenerateCount
	generateSeed  int64
)

// generateCmd produces a synthetic log file for demos and testing.
var generateCmd = &cobra.Command{
	Use:   "generate [log-path]",
	Short: "Generate a synthetic server access log.",
	Long: `Generate a synthetic server access log with realistic traffic
patterns, including a share of malformed addresses and junk suffixes
that exercise the lenient parser.

Examples:
  # Write the default entry count to the default log location
  loganalyzer generate

  # Write a small reproducible file
  loganalyzer generate testdata/sample.log --count 1000 --seed 42`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		seed := generateSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		generator := gen.NewGenerator(seed)
		if err := generator.WriteFile(cfg.LogPath, generateCount); err != nil {
			contract.LogFatal("Cannot generate log file", err)
		}
		fmt.Printf("Generated %d log entries at %s\n", generateCount, cfg.LogPath)
	},
}
