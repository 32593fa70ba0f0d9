package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

func TestRunRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	fileSchema := parquet.SchemaOf(new(RunRow))
	require.NotNil(t, fileSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"created_at",
		"total_requests",
		"total_errors",
		"error_rate",
		"error_frequency",
		"top_error_addresses",
		"execution_time",
	}

	for _, colName := range expectedColumns {
		col, ok := fileSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	runs := []schema.RunRecord{
		{
			ID:             1,
			CreatedAt:      time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			TotalRequests:  100,
			TotalErrors:    10,
			ErrorRate:      10.0,
			ErrorFrequency: map[string]int{"404": 6, "500": 4},
			TopErrorAddresses: []schema.CountEntry{
				{Key: "10.0.0.1", Count: 8},
			},
			ExecutionTime: 0.4,
		},
		{
			ID:            2,
			CreatedAt:     time.Date(2024, 1, 16, 11, 0, 0, 0, time.UTC),
			TotalRequests: 50,
			ErrorRate:     0.0,
			ExecutionTime: 0.1,
		},
	}

	require.NoError(t, WriteRunsParquet(runs, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[RunRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]RunRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(runs), n)

	assert.Equal(t, int64(1), readData[0].RunID)
	assert.Equal(t, int32(100), readData[0].TotalRequests)
	assert.InDelta(t, 10.0, readData[0].ErrorRate, 0.001)
	require.NotNil(t, readData[0].ErrorFrequency)
	assert.JSONEq(t, `{"404":6,"500":4}`, *readData[0].ErrorFrequency)
	require.NotNil(t, readData[0].TopErrorAddresses)

	// A run with no error breakdown keeps the nullable columns empty
	assert.Equal(t, int64(2), readData[1].RunID)
	assert.Nil(t, readData[1].ErrorFrequency)
	assert.Nil(t, readData[1].TopErrorAddresses)
}

func TestWriteRunsParquet_Empty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet(nil, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}
