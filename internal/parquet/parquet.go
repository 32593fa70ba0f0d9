// Package parquet exports stored analysis runs to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// RunRow represents a single stored analysis run.
// This struct maps to the loganalyzer_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// CreatedAt is when the run was stored (TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// TotalRequests is the number of parsed log records in the run
	TotalRequests int32 `parquet:"total_requests,snappy"`

	// TotalErrors is the number of records with an error status code
	TotalErrors int32 `parquet:"total_errors,snappy"`

	// ErrorRate is TotalErrors over TotalRequests as a percentage
	ErrorRate float64 `parquet:"error_rate,snappy"`

	// ErrorFrequency is the JSON-encoded per-code error breakdown (nullable)
	ErrorFrequency *string `parquet:"error_frequency,optional,snappy"`

	// TopErrorAddresses is the JSON-encoded ranked address list (nullable)
	TopErrorAddresses *string `parquet:"top_error_addresses,optional,snappy"`

	// ExecutionTime is the analysis wall-clock duration in seconds
	ExecutionTime float64 `parquet:"execution_time,snappy"`
}

// WriteRunsParquet writes stored runs to a Parquet file.
func WriteRunsParquet(runs []schema.RunRecord, outputPath string) error {
	rows := make([]RunRow, 0, len(runs))
	for _, run := range runs {
		row := RunRow{
			RunID:         run.ID,
			CreatedAt:     run.CreatedAt,
			TotalRequests: int32(run.TotalRequests),
			TotalErrors:   int32(run.TotalErrors),
			ErrorRate:     run.ErrorRate,
			ExecutionTime: run.ExecutionTime,
		}
		if len(run.ErrorFrequency) > 0 {
			encoded, err := json.Marshal(run.ErrorFrequency)
			if err != nil {
				return fmt.Errorf("failed to marshal error frequency for run %d: %w", run.ID, err)
			}
			s := string(encoded)
			row.ErrorFrequency = &s
		}
		if len(run.TopErrorAddresses) > 0 {
			encoded, err := json.Marshal(run.TopErrorAddresses)
			if err != nil {
				return fmt.Errorf("failed to marshal top error addresses for run %d: %w", run.ID, err)
			}
			s := string(encoded)
			row.TopErrorAddresses = &s
		}
		rows = append(rows, row)
	}

	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunRow struct tags
	writer := parquet.NewGenericWriter[RunRow](file)

	// Write all records to the file
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
