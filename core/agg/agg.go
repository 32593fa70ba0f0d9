package agg

import (
	"strings"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// Accumulator folds LogRecords into running counts. Batches can be
// accumulated independently and combined with Merge; the combined counts
// are identical to accumulating everything sequentially. An Accumulator is
// not safe for concurrent use — each worker owns its own and merges once.
type Accumulator struct {
	classifier *Classifier

	totalRequests int
	totalErrors   int

	errorFreq    map[string]int
	methodDist   map[string]int
	hourlyErrors map[int]int

	errorAddrs *counter
	reqAddrs   *counter
	errorPaths *counter
}

// NewAccumulator returns an empty Accumulator using the given classifier.
func NewAccumulator(classifier *Classifier) *Accumulator {
	return &Accumulator{
		classifier:   classifier,
		errorFreq:    make(map[string]int),
		methodDist:   make(map[string]int),
		hourlyErrors: make(map[int]int),
		errorAddrs:   newCounter(),
		reqAddrs:     newCounter(),
		errorPaths:   newCounter(),
	}
}

// Add folds a single record into the counts. It never fails: a timestamp
// whose hour cannot be extracted only skips the hourly metric.
func (a *Accumulator) Add(rec schema.LogRecord) {
	a.totalRequests++
	a.methodDist[rec.Method]++
	a.reqAddrs.add(rec.Address)

	if !a.classifier.IsError(rec.Status) {
		return
	}

	a.totalErrors++
	a.errorFreq[rec.Status]++
	a.errorAddrs.add(rec.Address)
	if rec.URL != "" {
		a.errorPaths.add(rec.URL)
	}
	if hour, ok := hourFromTimestamp(rec.Timestamp); ok {
		a.hourlyErrors[hour]++
	}
}

// Merge folds other into a. For identical final counts the merge order is
// irrelevant; merging batches in production order additionally preserves
// the first-occurrence tie-break of the sequential result.
func (a *Accumulator) Merge(other *Accumulator) {
	a.totalRequests += other.totalRequests
	a.totalErrors += other.totalErrors
	for code, n := range other.errorFreq {
		a.errorFreq[code] += n
	}
	for method, n := range other.methodDist {
		a.methodDist[method] += n
	}
	for hour, n := range other.hourlyErrors {
		a.hourlyErrors[hour] += n
	}
	a.errorAddrs.merge(other.errorAddrs)
	a.reqAddrs.merge(other.reqAddrs)
	a.errorPaths.merge(other.errorPaths)
}

// Result materializes the final AnalysisResult. An empty accumulator is a
// valid case and yields all-zero counts with empty maps. ExecutionTime is
// left for the pipeline to fill in.
func (a *Accumulator) Result() *schema.AnalysisResult {
	result := &schema.AnalysisResult{
		TotalRequests:       a.totalRequests,
		TotalErrors:         a.totalErrors,
		ErrorFrequency:      a.errorFreq,
		MethodDistribution:  a.methodDist,
		HourlyErrorPattern:  a.hourlyErrors,
		TopErrorAddresses:   a.errorAddrs.top(TopEntries),
		TopRequestAddresses: a.reqAddrs.top(TopEntries),
		ErrorPaths:          a.errorPaths.top(TopEntries),
	}
	if a.totalRequests > 0 {
		result.ErrorRate = float64(a.totalErrors) / float64(a.totalRequests) * 100
	}
	return result
}

// Aggregate is a convenience wrapper that folds a fully materialized record
// slice into a result in one pass.
func Aggregate(records []schema.LogRecord, classifier *Classifier) *schema.AnalysisResult {
	acc := NewAccumulator(classifier)
	for _, rec := range records {
		acc.Add(rec)
	}
	return acc.Result()
}

// hourFromTimestamp extracts the hour of day from the HH:MM:SS portion of
// a textual timestamp: the two digits before the first colon. Timestamps
// without that shape yield ok=false.
func hourFromTimestamp(ts string) (int, bool) {
	i := strings.IndexByte(ts, ':')
	if i < 2 {
		return 0, false
	}
	tens, ones := ts[i-2], ts[i-1]
	if tens < '0' || tens > '9' || ones < '0' || ones > '9' {
		return 0, false
	}
	hour := int(tens-'0')*10 + int(ones-'0')
	if hour > 23 {
		return 0, false
	}
	return hour, true
}
