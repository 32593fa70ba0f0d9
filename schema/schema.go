// Package schema has records, enums and shared models for all parts of loganalyzer.
package schema

import "time"

// LogRecord is the structured result of parsing one access-log line.
// All fields keep the original textual form from the log; the core never
// converts the timestamp into a calendar type or validates the address
// beyond dotted-quad shape.
type LogRecord struct {
	Timestamp string // Textual timestamp, e.g. "2024-01-01 10:00:00"
	Address   string // Dotted-quad client address as written in the log
	Method    string // HTTP method token
	URL       string // Raw path/query token (may be empty for fallback parses)
	Status    string // 3-character numeric status code as text
}

// CountEntry is one row of a descending top-N ranking.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AnalysisResult is the aggregate produced once per pipeline run.
// It is immutable after creation; reporting and persistence collaborators
// consume it read-only.
type AnalysisResult struct {
	TotalRequests       int            `json:"total_requests"`
	TotalErrors         int            `json:"total_errors"`
	ErrorRate           float64        `json:"error_rate"` // percentage, 0 when TotalRequests is 0
	ErrorFrequency      map[string]int `json:"error_frequency"`
	TopErrorAddresses   []CountEntry   `json:"top_error_addresses"`
	MethodDistribution  map[string]int `json:"method_distribution"`
	HourlyErrorPattern  map[int]int    `json:"hourly_error_pattern"`
	TopRequestAddresses []CountEntry   `json:"top_request_addresses"`
	ErrorPaths          []CountEntry   `json:"error_paths"`
	SkippedLines        int            `json:"skipped_lines"`
	ExecutionTime       float64        `json:"execution_time"` // wall-clock seconds for parse+aggregate
}

// Empty reports whether the run produced no parseable records.
// Callers must treat this as a valid outcome, not a failure.
func (r *AnalysisResult) Empty() bool {
	return r.TotalRequests == 0
}

// RunRecord is a persisted analysis run as returned by the store.
type RunRecord struct {
	ID                int64          `json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	TotalRequests     int            `json:"total_requests"`
	TotalErrors       int            `json:"total_errors"`
	ErrorRate         float64        `json:"error_rate"`
	ErrorFrequency    map[string]int `json:"error_frequency"`
	TopErrorAddresses []CountEntry   `json:"top_error_addresses"`
	ExecutionTime     float64        `json:"execution_time"`
}

// RunStatistics summarizes all stored runs.
type RunStatistics struct {
	RunCount     int64      `json:"run_count"`
	AvgErrorRate float64    `json:"avg_error_rate"`
	LastRun      *RunRecord `json:"last_run,omitempty"`
}
