// Package gen produces synthetic server access logs for demos and load
// testing the analysis pipeline.
package gen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Entry shape knobs. Most lines are clean; a small share simulates the
// malformed input the parser has to survive.
const (
	malformedAddrShare = 0.10
	junkSuffixShare    = 0.02
	successShare       = 0.85
	entrySpacing       = 2 * time.Second
)

var (
	methods       = []string{"GET", "POST", "PUT", "DELETE", "HEAD"}
	methodWeights = []float64{0.7, 0.15, 0.05, 0.05, 0.05}

	urls = []string{
		"/api/users", "/api/products", "/home", "/dashboard",
		"/login", "/logout", "/images/photo.jpg", "/css/style.css",
		"/admin", "/api/v1/data", "/search", "/profile",
	}

	successCodes = []string{"200", "201", "204", "301", "302", "304"}
	errorCodes   = []string{"400", "401", "403", "404", "500", "502", "503"}

	malformedAddrs = []string{
		"999.999.999.999", // Invalid octets
		"192.168.1",       // Incomplete address
		"localhost",       // Hostname instead of address
	}
)

// Generator emits synthetic log lines from a seeded random source, so
// the same seed reproduces the same file.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// WriteFile generates count log entries into the file at path, creating
// parent directories as needed.
func (g *Generator) WriteFile(path string, count int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	if err := g.Write(w, count); err != nil {
		return err
	}
	return w.Flush()
}

// Write generates count log entries onto w with timestamps advancing at
// a fixed spacing from one day ago.
func (g *Generator) Write(w io.Writer, count int) error {
	base := time.Now().Add(-24 * time.Hour)
	for i := range count {
		ts := base.Add(time.Duration(i) * entrySpacing)
		if _, err := io.WriteString(w, g.Entry(ts)); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}

// Entry produces one log line, newline included.
func (g *Generator) Entry(ts time.Time) string {
	addr := g.address()
	method := g.method()
	url := urls[g.rng.Intn(len(urls))]
	status := g.status()

	line := fmt.Sprintf("%s %s %s %s %s",
		ts.Format("2006-01-02 15:04:05"), addr, method, url, status)
	if g.rng.Float64() < junkSuffixShare {
		line += " EXTRA_JUNK_DATA"
	}
	return line + "\n"
}

func (g *Generator) address() string {
	if g.rng.Float64() < malformedAddrShare {
		return malformedAddrs[g.rng.Intn(len(malformedAddrs))]
	}
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rng.Intn(223)+1, g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256))
}

func (g *Generator) method() string {
	roll := g.rng.Float64()
	acc := 0.0
	for i, weight := range methodWeights {
		acc += weight
		if roll < acc {
			return methods[i]
		}
	}
	return methods[len(methods)-1]
}

func (g *Generator) status() string {
	if g.rng.Float64() < successShare {
		return successCodes[g.rng.Intn(len(successCodes))]
	}
	return errorCodes[g.rng.Intn(len(errorCodes))]
}
