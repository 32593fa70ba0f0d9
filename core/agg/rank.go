package agg

import (
	"sort"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// TopEntries is the size cap applied to every top-N ranking.
const TopEntries = 10

// counter counts string keys while remembering first-occurrence order.
// That order is the deterministic tie-break for rankings: among equal
// counts, the key seen first ranks first.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	c.addN(key, 1)
}

func (c *counter) addN(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// merge folds other into c. Keys already known to c keep their position;
// new keys are appended in other's first-occurrence order, so merging
// batches in production order reproduces the sequential ordering.
func (c *counter) merge(other *counter) {
	for _, key := range other.order {
		c.addN(key, other.counts[key])
	}
}

// top returns the n highest-count entries in strictly descending count
// order. The stable sort over first-occurrence order makes ties
// deterministic and reproducible for a given input.
func (c *counter) top(n int) []schema.CountEntry {
	entries := make([]schema.CountEntry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, schema.CountEntry{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
