// Package contract has the validated configuration, collaborator
// interfaces and shared helpers used across loganalyzer.
package contract

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// Default values for configuration.
const (
	DefaultChunkSize   = 10000
	DefaultWorkers     = 1
	DefaultRecentLimit = 10
	MaxRecentLimit     = 200
	DefaultKeepDays    = 30
	DefaultServeAddr   = "127.0.0.1:5000"
	DefaultLogPath     = "logs/server.log"
)

// statusCodePattern validates configured error codes.
var statusCodePattern = regexp.MustCompile(`^\d{3}$`)

// Config holds the runtime configuration for the analyzer.
// This struct remains the "final, validated" config.
type Config struct {
	LogPath    string            // File path, .gz path or s3:// URI of the log source
	ChunkSize  int               // Records buffered per batch while streaming
	Workers    int               // Parallel batch workers; 1 means sequential
	ErrorCodes []string          // Status codes counted as errors
	Output     schema.OutputMode // Result rendering: text, csv or json
	OutputFile string            // Optional file to write the rendering to

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	RecentLimit int    // Rows shown by history recent
	KeepDays    int    // Retention window for history clear
	ServeAddr   string // Dashboard listen address
	UseColors   bool   // Enable colored labels in report output
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	LogPathStr     string   `mapstructure:"-"`
	ChunkSize      int      `mapstructure:"chunk-size"`
	Workers        int      `mapstructure:"workers"`
	ErrorCodes     []string `mapstructure:"error-codes"`
	Output         string   `mapstructure:"output"`
	OutputFile     string   `mapstructure:"output-file"`
	StoreBackend   string   `mapstructure:"store-backend"`
	StoreDBConnect string   `mapstructure:"store-db-connect"`
	Limit          int      `mapstructure:"limit"`
	KeepDays       int      `mapstructure:"keep-days"`
	ServeAddr      string   `mapstructure:"addr"`
	Color          string   `mapstructure:"color"`
}

// ProcessAndValidate turns raw input into a validated Config.
// It returns the first validation problem encountered.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.LogPath = input.LogPathStr
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogPath
	}

	if input.ChunkSize < 1 {
		return fmt.Errorf("chunk-size must be at least 1, got %d", input.ChunkSize)
	}
	cfg.ChunkSize = input.ChunkSize

	if input.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	for _, code := range input.ErrorCodes {
		if !statusCodePattern.MatchString(code) {
			return fmt.Errorf("invalid error code %q: must be a 3-digit status code", code)
		}
	}
	cfg.ErrorCodes = input.ErrorCodes

	switch schema.OutputMode(strings.ToLower(input.Output)) {
	case schema.TextOut, "":
		cfg.Output = schema.TextOut
	case schema.CSVOut:
		cfg.Output = schema.CSVOut
	case schema.JSONOut:
		cfg.Output = schema.JSONOut
	default:
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.StoreBackend = backend
	case "":
		cfg.StoreBackend = schema.SQLiteBackend
	default:
		return fmt.Errorf("invalid store backend %q: must be sqlite, mysql, postgresql or none", input.StoreBackend)
	}
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, input.StoreDBConnect); err != nil {
		return err
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	if input.Limit < 1 || input.Limit > MaxRecentLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxRecentLimit, input.Limit)
	}
	cfg.RecentLimit = input.Limit

	if input.KeepDays < 0 {
		return fmt.Errorf("keep-days cannot be negative, got %d", input.KeepDays)
	}
	cfg.KeepDays = input.KeepDays

	cfg.ServeAddr = input.ServeAddr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	cfg.UseColors = !strings.EqualFold(input.Color, "no")

	return nil
}

// ValidateDatabaseConnectionString checks that networked backends carry a
// connection string. SQLite tolerates an empty string (default file path).
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s backend requires store-db-connect", backend)
		}
	}
	return nil
}

// RunStore is the persistence collaborator for analysis runs. The pipeline
// depends only on SaveRun succeeding or failing without crashing the run;
// the remaining operations serve history and dashboard commands.
type RunStore interface {
	SaveRun(result *schema.AnalysisResult) (int64, error)
	RecentRuns(limit int) ([]schema.RunRecord, error)
	Statistics() (schema.RunStatistics, error)
	ClearRuns(olderThan time.Time) (int64, error)
	Close() error
}

// SourceOpener resolves a log path or URI into a readable stream.
type SourceOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
