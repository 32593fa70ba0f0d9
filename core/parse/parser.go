// Package parse turns raw access-log text into structured records.
package parse

import (
	"regexp"
	"strings"

	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// strictPattern matches well-formed access-log lines of the form
// "YYYY-MM-DD HH:MM:SS <ipv4> <METHOD> <url> <status>".
// It is anchored at the start only, so trailing junk after the status
// code is ignored rather than rejected.
var strictPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) ` +
		`(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}) ` +
		`(GET|POST|PUT|DELETE|HEAD|OPTIONS|PATCH) ` +
		`(\S+) ` +
		`(\d{3})`)

// Shape checks used by the tolerant fallback. Both are leading matches:
// numeric range is deliberately not validated, so "999.999.999.999" passes
// the address shape while "192.168.1" and "localhost" do not.
var (
	statusShape  = regexp.MustCompile(`^\d{3}`)
	addressShape = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
)

// Parser extracts LogRecords from raw log lines. The compiled strict pattern
// is tried first; lines that miss it go through a positional fallback that
// tolerates minor format drift. The zero value is ready to use.
type Parser struct{}

// NewParser returns a ready-to-use Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a single log line. ok is false for empty lines and for lines
// that fail both the strict grammar and the fallback heuristic; a failed
// parse is routine and never surfaces as an error.
func (p *Parser) Parse(line string) (schema.LogRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return schema.LogRecord{}, false
	}

	if m := strictPattern.FindStringSubmatch(line); m != nil {
		return schema.LogRecord{
			Timestamp: m[1],
			Address:   m[2],
			Method:    m[3],
			URL:       m[4],
			Status:    m[5],
		}, true
	}

	return p.fallbackParse(line)
}

// fallbackParse handles lines that miss the strict grammar. Fields are
// assigned by position: one or two leading timestamp tokens (two when the
// line has at least six tokens, to account for a space inside the
// timestamp), then address and method, with the status taken from the last
// token. Only token shape is validated.
func (p *Parser) fallbackParse(line string) (schema.LogRecord, bool) {
	parts := strings.Fields(line)
	if len(parts) < 5 {
		return schema.LogRecord{}, false
	}

	var rec schema.LogRecord
	var methodIdx int
	if len(parts) > 5 {
		rec.Timestamp = parts[0] + " " + parts[1]
		rec.Address = parts[2]
		rec.Method = parts[3]
		methodIdx = 3
	} else {
		rec.Timestamp = parts[0]
		rec.Address = parts[1]
		rec.Method = parts[2]
		methodIdx = 2
	}
	rec.Status = parts[len(parts)-1]

	// The URL is whatever sits between the method and the status, if anything.
	if methodIdx+1 < len(parts)-1 {
		rec.URL = parts[methodIdx+1]
	}

	if !statusShape.MatchString(rec.Status) || !addressShape.MatchString(rec.Address) {
		return schema.LogRecord{}, false
	}
	return rec, true
}
