package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

func sampleResult(requests, errors int) *schema.AnalysisResult {
	rate := 0.0
	if requests > 0 {
		rate = float64(errors) / float64(requests) * 100
	}
	return &schema.AnalysisResult{
		TotalRequests:  requests,
		TotalErrors:    errors,
		ErrorRate:      rate,
		ErrorFrequency: map[string]int{"404": errors},
		TopErrorAddresses: []schema.CountEntry{
			{Key: "10.0.0.1", Count: errors},
		},
		ExecutionTime: 0.5,
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// SaveRun should return 0 for NoneBackend
	runID, err := store.SaveRun(sampleResult(10, 2))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	runs, err := store.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	stats, err := store.Statistics()
	assert.NoError(t, err)
	assert.Zero(t, stats.RunCount)

	deleted, err := store.ClearRuns(time.Time{})
	assert.NoError(t, err)
	assert.Zero(t, deleted)

	assert.NoError(t, store.Close())
}

func TestRunStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Save two runs
	firstID, err := store.SaveRun(sampleResult(100, 10))
	require.NoError(t, err)
	assert.Greater(t, firstID, int64(0))

	secondID, err := store.SaveRun(sampleResult(200, 50))
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	// Most recent first
	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, secondID, runs[0].ID)
	assert.Equal(t, 200, runs[0].TotalRequests)
	assert.Equal(t, 50, runs[0].TotalErrors)
	assert.InDelta(t, 25.0, runs[0].ErrorRate, 0.001)
	assert.Equal(t, map[string]int{"404": 50}, runs[0].ErrorFrequency)
	require.Len(t, runs[0].TopErrorAddresses, 1)
	assert.Equal(t, "10.0.0.1", runs[0].TopErrorAddresses[0].Key)
	assert.WithinDuration(t, time.Now(), runs[0].CreatedAt, time.Minute)

	// Limit applies
	runs, err = store.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	// Statistics cover both runs
	stats, err := store.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RunCount)
	assert.InDelta(t, 17.5, stats.AvgErrorRate, 0.001)
	require.NotNil(t, stats.LastRun)
	assert.Equal(t, secondID, stats.LastRun.ID)
}

func TestRunStore_ClearRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.SaveRun(sampleResult(10, 1))
	require.NoError(t, err)
	_, err = store.SaveRun(sampleResult(20, 2))
	require.NoError(t, err)

	// A cutoff in the past deletes nothing
	deleted, err := store.ClearRuns(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// A zero cutoff deletes everything
	deleted, err = store.ClearRuns(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	stats, err := store.Statistics()
	require.NoError(t, err)
	assert.Zero(t, stats.RunCount)
	assert.Nil(t, stats.LastRun)
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
