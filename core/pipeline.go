// Package core drives the parse → aggregate analysis pipeline.
package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/maniprasoon/Log-File-Analyzer/core/agg"
	"github.com/maniprasoon/Log-File-Analyzer/core/parse"
	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// SourceError reports a log source that could not be opened or read.
// It is the only failure mode of a pipeline run: parse failures are
// counted and an empty dataset is a valid result.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("log source %s unavailable: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Pipeline streams a log source through the parser and aggregation engine
// and hands the result to the persistence collaborator. Storage is
// best-effort from the pipeline's perspective: a save failure is logged
// and never fails the run.
type Pipeline struct {
	cfg    *contract.Config
	parser *parse.Parser
	opener contract.SourceOpener
	store  contract.RunStore // may be nil when persistence is disabled
}

// NewPipeline assembles a pipeline from its collaborators. store may be
// nil to disable persistence.
func NewPipeline(cfg *contract.Config, opener contract.SourceOpener, store contract.RunStore) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		parser: parse.NewParser(),
		opener: opener,
		store:  store,
	}
}

// Run analyzes the log source at path. A missing or unreadable source
// returns a *SourceError; a successfully read source with zero parseable
// records returns a valid result whose Empty method reports true.
func (p *Pipeline) Run(ctx context.Context, path string) (*schema.AnalysisResult, error) {
	start := time.Now()

	rc, err := p.opener.Open(ctx, path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer func() { _ = rc.Close() }()

	chunker := parse.NewChunker(rc, p.parser, p.cfg.ChunkSize)
	classifier := agg.NewClassifier(p.cfg.ErrorCodes)

	var acc *agg.Accumulator
	if p.cfg.Workers > 1 {
		acc = aggregateParallel(chunker, classifier, p.cfg.Workers)
	} else {
		acc = aggregateSequential(chunker, classifier)
	}
	if err := chunker.Err(); err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	result := acc.Result()
	result.SkippedLines = chunker.Skipped()
	result.ExecutionTime = time.Since(start).Seconds()

	if !result.Empty() && p.store != nil {
		if _, err := p.store.SaveRun(result); err != nil {
			contract.LogWarn("Failed to save analysis run", err)
		}
	}

	return result, nil
}

// aggregateSequential drains the chunker batch by batch into a single
// accumulator.
func aggregateSequential(chunker *parse.Chunker, classifier *agg.Classifier) *agg.Accumulator {
	acc := agg.NewAccumulator(classifier)
	for {
		batch, ok := chunker.Next()
		if !ok {
			break
		}
		for _, rec := range batch {
			acc.Add(rec)
		}
	}
	return acc
}

// indexedBatch carries a batch with its production sequence number so the
// final merge can replay batches in order.
type indexedBatch struct {
	seq     int
	records []schema.LogRecord
}

// indexedPartial is one worker-produced accumulator, tagged with the
// sequence of the batch it covers.
type indexedPartial struct {
	seq int
	acc *agg.Accumulator
}

// aggregateParallel fans batches out to workers, each folding its batches
// into private accumulators, and merges the partials at a single point
// after all workers complete. Partials merge in batch production order,
// which keeps the result identical to the sequential path, tie-breaks
// included.
func aggregateParallel(chunker *parse.Chunker, classifier *agg.Classifier, workers int) *agg.Accumulator {
	batchCh := make(chan indexedBatch, workers)
	partialCh := make(chan indexedPartial, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for b := range batchCh {
				acc := agg.NewAccumulator(classifier)
				for _, rec := range b.records {
					acc.Add(rec)
				}
				partialCh <- indexedPartial{seq: b.seq, acc: acc}
			}
		})
	}

	// The chunker is single-reader; only this goroutine touches it.
	go func() {
		seq := 0
		for {
			batch, ok := chunker.Next()
			if !ok {
				break
			}
			batchCh <- indexedBatch{seq: seq, records: batch}
			seq++
		}
		close(batchCh)
		wg.Wait()
		close(partialCh)
	}()

	partials := make([]indexedPartial, 0, workers)
	for p := range partialCh {
		partials = append(partials, p)
	}
	sort.Slice(partials, func(i, j int) bool {
		return partials[i].seq < partials[j].seq
	})

	acc := agg.NewAccumulator(classifier)
	for _, p := range partials {
		acc.Merge(p.acc)
	}
	return acc
}
