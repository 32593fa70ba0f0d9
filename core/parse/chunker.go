package parse

import (
	"bufio"
	"io"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// DefaultChunkSize is the number of records buffered per batch when no
// explicit chunk size is configured.
const DefaultChunkSize = 10000

// maxLineSize bounds a single log line; anything longer fails the scan.
const maxLineSize = 1024 * 1024

// Chunker reads a log source line by line and groups parsed records into
// bounded batches, so peak memory stays proportional to the chunk size
// regardless of file size. Lines that fail to parse are counted and
// dropped. A Chunker is single-use and not safe for concurrent callers.
type Chunker struct {
	scanner *bufio.Scanner
	parser  *Parser
	size    int
	skipped int
	done    bool
	err     error
}

// NewChunker wraps r with a Chunker producing batches of up to size
// records. A size below 1 falls back to DefaultChunkSize.
func NewChunker(r io.Reader, parser *Parser, size int) *Chunker {
	if size < 1 {
		size = DefaultChunkSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Chunker{
		scanner: scanner,
		parser:  parser,
		size:    size,
	}
}

// Next returns the next batch of parsed records. A returned batch holds
// between 1 and the chunk size records; the final batch may be partial and
// an empty trailing batch is never produced. ok is false once the source
// is exhausted or a read error occurred — check Err after the last batch.
func (c *Chunker) Next() ([]schema.LogRecord, bool) {
	if c.done {
		return nil, false
	}

	batch := make([]schema.LogRecord, 0, c.size)
	for c.scanner.Scan() {
		rec, ok := c.parser.Parse(c.scanner.Text())
		if !ok {
			c.skipped++
			continue
		}
		batch = append(batch, rec)
		if len(batch) >= c.size {
			return batch, true
		}
	}

	c.done = true
	c.err = c.scanner.Err()
	if len(batch) == 0 {
		return nil, false
	}
	return batch, true
}

// Skipped returns the number of lines dropped so far because they produced
// no record, blank lines included.
func (c *Chunker) Skipped() int {
	return c.skipped
}

// Err returns the first read error encountered, if any. Parse failures are
// never errors; only the underlying source can fail.
func (c *Chunker) Err() error {
	return c.err
}
