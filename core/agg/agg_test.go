package agg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

func rec(ts, addr, method, url, status string) schema.LogRecord {
	return schema.LogRecord{Timestamp: ts, Address: addr, Method: method, URL: url, Status: status}
}

func TestClassifier_Defaults(t *testing.T) {
	c := NewClassifier(nil)

	for _, code := range DefaultErrorCodes {
		assert.True(t, c.IsError(code))
	}
	for _, code := range []string{"200", "201", "301", "304", "418"} {
		assert.False(t, c.IsError(code))
	}
}

func TestClassifier_Override(t *testing.T) {
	c := NewClassifier([]string{"404", "418"})

	assert.True(t, c.IsError("404"))
	assert.True(t, c.IsError("418"))
	assert.False(t, c.IsError("500"))
}

func TestAggregate_Counts(t *testing.T) {
	records := []schema.LogRecord{
		rec("2024-01-15 10:30:45", "10.0.0.1", "GET", "/home", "200"),
		rec("2024-01-15 10:31:45", "10.0.0.1", "GET", "/admin", "404"),
		rec("2024-01-15 11:00:00", "10.0.0.2", "POST", "/login", "401"),
		rec("2024-01-15 11:05:00", "10.0.0.2", "POST", "/login", "401"),
		rec("2024-01-15 12:00:00", "10.0.0.3", "PUT", "/api/v1/data", "200"),
	}
	result := Aggregate(records, NewClassifier(nil))

	assert.Equal(t, 5, result.TotalRequests)
	assert.Equal(t, 3, result.TotalErrors)
	assert.InDelta(t, 60.0, result.ErrorRate, 0.001)
	assert.Equal(t, map[string]int{"404": 1, "401": 2}, result.ErrorFrequency)
	assert.Equal(t, map[string]int{"GET": 2, "POST": 2, "PUT": 1}, result.MethodDistribution)
	assert.Equal(t, map[int]int{10: 1, 11: 2}, result.HourlyErrorPattern)

	require.NotEmpty(t, result.TopErrorAddresses)
	assert.Equal(t, schema.CountEntry{Key: "10.0.0.2", Count: 2}, result.TopErrorAddresses[0])
	require.NotEmpty(t, result.ErrorPaths)
	assert.Equal(t, schema.CountEntry{Key: "/login", Count: 2}, result.ErrorPaths[0])
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil, NewClassifier(nil))

	assert.True(t, result.Empty())
	assert.Zero(t, result.TotalRequests)
	assert.Zero(t, result.ErrorRate)
	assert.Empty(t, result.ErrorFrequency)
	assert.Empty(t, result.TopErrorAddresses)
}

func TestAggregate_ZeroErrorRate(t *testing.T) {
	records := []schema.LogRecord{
		rec("2024-01-15 10:30:45", "10.0.0.1", "GET", "/home", "200"),
	}
	result := Aggregate(records, NewClassifier(nil))

	assert.Equal(t, 1, result.TotalRequests)
	assert.Zero(t, result.TotalErrors)
	assert.Zero(t, result.ErrorRate)
}

func TestAccumulator_EmptyURLSkipsErrorPaths(t *testing.T) {
	records := []schema.LogRecord{
		rec("2024-01-15 10:30:45", "10.0.0.1", "GET", "", "500"),
	}
	result := Aggregate(records, NewClassifier(nil))

	assert.Equal(t, 1, result.TotalErrors)
	assert.Empty(t, result.ErrorPaths)
	// The record still counts everywhere else.
	require.Len(t, result.TopErrorAddresses, 1)
	assert.Equal(t, 1, result.TopErrorAddresses[0].Count)
}

func TestAccumulator_BadTimestampSkipsHourly(t *testing.T) {
	records := []schema.LogRecord{
		rec("not-a-timestamp", "10.0.0.1", "GET", "/home", "500"),
		rec("1705312245", "10.0.0.1", "GET", "/home", "500"),
	}
	result := Aggregate(records, NewClassifier(nil))

	assert.Equal(t, 2, result.TotalErrors)
	assert.Empty(t, result.HourlyErrorPattern)
}

func TestTopEntries_CapAndTieBreak(t *testing.T) {
	acc := NewAccumulator(NewClassifier(nil))
	// Twelve distinct addresses erroring once each, in known order.
	for i := range 12 {
		acc.Add(rec("2024-01-15 10:00:00", fmt.Sprintf("10.0.0.%d", i), "GET", "/x", "500"))
	}
	result := acc.Result()

	require.Len(t, result.TopErrorAddresses, TopEntries)
	// All counts tie, so first-occurrence order decides.
	for i, entry := range result.TopErrorAddresses {
		assert.Equal(t, fmt.Sprintf("10.0.0.%d", i), entry.Key)
		assert.Equal(t, 1, entry.Count)
	}
}

func TestMerge_MatchesSequential(t *testing.T) {
	records := []schema.LogRecord{
		rec("2024-01-15 10:30:45", "10.0.0.1", "GET", "/home", "200"),
		rec("2024-01-15 10:31:45", "10.0.0.2", "GET", "/admin", "404"),
		rec("2024-01-15 11:00:00", "10.0.0.3", "POST", "/login", "401"),
		rec("2024-01-15 11:05:00", "10.0.0.1", "POST", "/login", "401"),
		rec("2024-01-15 12:00:00", "10.0.0.2", "PUT", "/api/v1/data", "503"),
		rec("2024-01-15 13:00:00", "10.0.0.3", "GET", "/search", "200"),
	}

	sequential := Aggregate(records, NewClassifier(nil))

	// Split into uneven batches and merge in production order.
	for _, split := range []int{1, 2, 3, 5} {
		merged := NewAccumulator(NewClassifier(nil))
		for start := 0; start < len(records); start += split {
			end := min(start+split, len(records))
			part := NewAccumulator(NewClassifier(nil))
			for _, r := range records[start:end] {
				part.Add(r)
			}
			merged.Merge(part)
		}
		assert.Equal(t, sequential, merged.Result(), "split size %d", split)
	}
}

func TestAggregate_SumInvariants(t *testing.T) {
	records := []schema.LogRecord{
		rec("2024-01-15 10:30:45", "10.0.0.1", "GET", "/home", "200"),
		rec("2024-01-15 10:31:45", "10.0.0.2", "POST", "/admin", "404"),
		rec("2024-01-15 11:00:00", "10.0.0.3", "PUT", "/login", "401"),
		rec("2024-01-15 11:05:00", "10.0.0.1", "HEAD", "/login", "503"),
	}
	result := Aggregate(records, NewClassifier(nil))

	methodSum := 0
	for _, n := range result.MethodDistribution {
		methodSum += n
	}
	assert.Equal(t, result.TotalRequests, methodSum)

	errorSum := 0
	for _, n := range result.ErrorFrequency {
		errorSum += n
	}
	assert.Equal(t, result.TotalErrors, errorSum)

	assert.InDelta(t, float64(result.TotalErrors)/float64(result.TotalRequests)*100,
		result.ErrorRate, 1e-9)
}

func TestHourFromTimestamp(t *testing.T) {
	tests := []struct {
		ts   string
		hour int
		ok   bool
	}{
		{"2024-01-15 10:30:45", 10, true},
		{"2024-01-15 00:00:00", 0, true},
		{"2024-01-15 23:59:59", 23, true},
		{"2024-01-15 99:00:00", 0, false},
		{"10:30:45", 10, true},
		{"1705312245", 0, false},
		{"", 0, false},
		{"x:30", 0, false},
	}
	for _, tt := range tests {
		hour, ok := hourFromTimestamp(tt.ts)
		assert.Equal(t, tt.ok, ok, "ts %q", tt.ts)
		if tt.ok {
			assert.Equal(t, tt.hour, hour, "ts %q", tt.ts)
		}
	}
}
