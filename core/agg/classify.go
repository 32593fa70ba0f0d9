// Package agg aggregates parsed log records into analysis results.
package agg

// DefaultErrorCodes is the fixed set of HTTP status codes treated as
// errors when no override is configured.
var DefaultErrorCodes = []string{
	"400", "401", "403", "404", "405", "408", "429",
	"500", "502", "503", "504",
}

// Classifier decides whether a status code counts as an error.
// It is a pure membership test with no failure mode.
type Classifier struct {
	codes map[string]struct{}
}

// NewClassifier builds a Classifier over the given status codes.
// A nil or empty slice selects DefaultErrorCodes.
func NewClassifier(codes []string) *Classifier {
	if len(codes) == 0 {
		codes = DefaultErrorCodes
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return &Classifier{codes: set}
}

// IsError reports whether the status code belongs to the error set.
func (c *Classifier) IsError(status string) bool {
	_, ok := c.codes[status]
	return ok
}
