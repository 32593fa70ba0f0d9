package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

func sampleAnalysis() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		TotalRequests:  100,
		TotalErrors:    12,
		ErrorRate:      12.0,
		ErrorFrequency: map[string]int{"404": 8, "500": 4},
		TopErrorAddresses: []schema.CountEntry{
			{Key: "10.0.0.1", Count: 7},
			{Key: "10.0.0.2", Count: 5},
		},
		MethodDistribution: map[string]int{"GET": 80, "POST": 20},
		HourlyErrorPattern: map[int]int{9: 4, 17: 8},
		ErrorPaths: []schema.CountEntry{
			{Key: "/admin", Count: 6},
		},
		SkippedLines:  3,
		ExecutionTime: 0.421,
	}
}

func TestWriteResultReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut}

	err := writeResultReport(&buf, sampleAnalysis(), cfg)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "SERVER LOG ANALYSIS REPORT")
	assert.Contains(t, out, "Total requests:  100")
	assert.Contains(t, out, "Total errors:    12")
	assert.Contains(t, out, "12.00% (High)")
	assert.Contains(t, out, "Skipped lines:   3")
	assert.Contains(t, out, "10.0.0.1")
	assert.Contains(t, out, "/admin")
	// Hourly chart rows for both active hours
	assert.Contains(t, out, "09:00 |")
	assert.Contains(t, out, "17:00 |")
	// No rows for quiet hours
	assert.NotContains(t, out, "03:00 |")
}

func TestWriteResultReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut}

	err := writeResultReport(&buf, &schema.AnalysisResult{}, cfg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No log entries found")
}

func TestWriteResultCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResultCSV(&buf, sampleAnalysis()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"section", "key", "value"}, rows[0])

	byKey := make(map[string]string)
	for _, row := range rows[1:] {
		byKey[row[0]+"/"+row[1]] = row[2]
	}
	assert.Equal(t, "100", byKey["summary/total_requests"])
	assert.Equal(t, "12.00", byKey["summary/error_rate"])
	assert.Equal(t, "High", byKey["summary/error_rate_label"])
	assert.Equal(t, "8", byKey["error_frequency/404"])
	assert.Equal(t, "7", byKey["top_error_addresses/10.0.0.1"])
	assert.Equal(t, "80", byKey["method_distribution/GET"])
	assert.Equal(t, "4", byKey["hourly_error_pattern/09"])
	assert.Equal(t, "6", byKey["error_paths//admin"])
}

func TestSortedCounts(t *testing.T) {
	entries := sortedCounts(map[string]int{"b": 2, "a": 2, "c": 5})
	require.Len(t, entries, 3)
	assert.Equal(t, schema.CountEntry{Key: "c", Count: 5}, entries[0])
	// Ties break on key order
	assert.Equal(t, "a", entries[1].Key)
	assert.Equal(t, "b", entries[2].Key)
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "ab", centerText("ab", 1))
}

func TestWriteHourlyChart_Scaling(t *testing.T) {
	var buf bytes.Buffer
	writeHourlyChart(&buf, map[int]int{0: 1, 12: 40})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// The busiest hour fills the full bar; a single error still shows one mark.
	assert.Contains(t, lines[1], strings.Repeat("#", maxBarWidth))
	assert.Contains(t, lines[0], "#")
	assert.NotContains(t, lines[0], "##")
}
