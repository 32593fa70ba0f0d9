// Package dashboard serves stored analysis runs over HTTP for quick
// inspection in a browser.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
)

// Server exposes the run store as a small web dashboard.
type Server struct {
	store contract.RunStore
	srv   *http.Server
}

// NewServer creates a dashboard over the given run store.
func NewServer(store contract.RunStore) *Server {
	return &Server{store: store}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// Handler builds the route table. Exposed separately so tests can drive
// the mux without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/analyses", s.handleAnalyses)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// handleAnalyses returns recent runs as JSON. The limit query parameter
// caps the row count.
func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := contract.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > contract.MaxRecentLimit {
		limit = contract.MaxRecentLimit
	}

	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load runs: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, runs)
}

// handleStats returns the run-history summary as JSON.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.store.Statistics()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load statistics: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, stats)
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, map[string]string{"status": "ok"})
}

// handleIndex renders the HTML overview page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	runs, err := s.store.RecentRuns(contract.DefaultRecentLimit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load runs: %v", err), http.StatusInternalServerError)
		return
	}
	stats, err := s.store.Statistics()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load statistics: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := indexData{Runs: runsToViews(runs), Stats: stats}
	if err := indexTemplate.Execute(w, data); err != nil {
		contract.LogWarn("Failed to render dashboard page", err)
	}
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		contract.LogWarn("Failed to encode dashboard response", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>Log Analyzer Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: right; }
th { background: #f0f0f0; }
td.label-Critical { color: #b00; font-weight: bold; }
td.label-High { color: #a0a; font-weight: bold; }
td.label-Moderate { color: #a80; }
td.label-Low { color: #07a; }
</style>
</head>
<body>
<h1>Log Analyzer Dashboard</h1>
<p>Stored runs: {{.Stats.RunCount}} | Average error rate: {{printf "%.2f" .Stats.AvgErrorRate}}%</p>
{{if .Runs}}
<table>
<tr><th>ID</th><th>When</th><th>Requests</th><th>Errors</th><th>Rate</th><th>Label</th></tr>
{{range .Runs}}
<tr>
<td>{{.ID}}</td>
<td>{{.When}}</td>
<td>{{.TotalRequests}}</td>
<td>{{.TotalErrors}}</td>
<td>{{printf "%.2f" .ErrorRate}}%</td>
<td class="label-{{.Label}}">{{.Label}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No stored analysis runs yet.</p>
{{end}}
</body>
</html>
`
