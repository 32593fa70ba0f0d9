package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// maxBarWidth bounds the hourly error chart bars.
const maxBarWidth = 40

// WriteResult outputs the analysis result, dispatching based on the output
// format configured.
func WriteResult(result *schema.AnalysisResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultCSV(w, result)
		}, "Wrote CSV")
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultReport(w, result, cfg)
		}, "Wrote report")
	}
}

// writeResultReport generates the human-readable analysis report.
func writeResultReport(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	width := reportWidth()
	rule := strings.Repeat("=", width)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, centerText("SERVER LOG ANALYSIS REPORT", width))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	label := contract.GetPlainLabel(result.ErrorRate)
	if cfg.UseColors {
		label = contract.GetColorLabel(result.ErrorRate)
	}
	fmt.Fprintf(w, "Total requests:  %d\n", result.TotalRequests)
	fmt.Fprintf(w, "Total errors:    %d\n", result.TotalErrors)
	fmt.Fprintf(w, "Error rate:      %.2f%% (%s)\n", result.ErrorRate, label)
	fmt.Fprintf(w, "Skipped lines:   %d\n", result.SkippedLines)
	fmt.Fprintf(w, "Execution time:  %.3fs\n", result.ExecutionTime)
	fmt.Fprintln(w)

	if result.Empty() {
		fmt.Fprintln(w, "No log entries found. Nothing to report.")
		return nil
	}

	if len(result.ErrorFrequency) > 0 {
		fmt.Fprintln(w, "Error status codes:")
		if err := renderCountTable(w, []string{"Code", "Count", "Share"},
			sortedCounts(result.ErrorFrequency), result.TotalErrors); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.TopErrorAddresses) > 0 {
		fmt.Fprintln(w, "Top error addresses:")
		if err := renderCountTable(w, []string{"Address", "Count", "Share"},
			result.TopErrorAddresses, result.TotalErrors); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.MethodDistribution) > 0 {
		fmt.Fprintln(w, "Request methods:")
		if err := renderCountTable(w, []string{"Method", "Count", "Share"},
			sortedCounts(result.MethodDistribution), result.TotalRequests); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.ErrorPaths) > 0 {
		fmt.Fprintln(w, "Top error paths:")
		if err := renderCountTable(w, []string{"Path", "Count", "Share"},
			result.ErrorPaths, result.TotalErrors); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.HourlyErrorPattern) > 0 {
		fmt.Fprintln(w, "Errors by hour:")
		writeHourlyChart(w, result.HourlyErrorPattern)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
	return nil
}

// renderCountTable renders key/count entries with their percentage of total.
func renderCountTable(w io.Writer, headers []string, entries []schema.CountEntry, total int) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", float64(e.Count)/float64(total)*100)
		}
		data = append(data, []string{e.Key, strconv.Itoa(e.Count), share})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeHourlyChart draws a 24-slot ASCII bar chart of error counts.
func writeHourlyChart(w io.Writer, hourly map[int]int) {
	maxCount := 0
	for _, count := range hourly {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		return
	}

	for hour := 0; hour < 24; hour++ {
		count, ok := hourly[hour]
		if !ok {
			continue
		}
		barLen := count * maxBarWidth / maxCount
		if barLen == 0 && count > 0 {
			barLen = 1
		}
		fmt.Fprintf(w, "  %02d:00 | %-*s %d\n", hour, maxBarWidth, strings.Repeat("#", barLen), count)
	}
}

// writeResultCSV writes the full result as section/key/value rows so one
// flat file carries every breakdown.
func writeResultCSV(w io.Writer, result *schema.AnalysisResult) error {
	return writeCSVWithHeader(w, []string{"section", "key", "value"}, func(cw *csv.Writer) error {
		rows := [][]string{
			{"summary", "total_requests", strconv.Itoa(result.TotalRequests)},
			{"summary", "total_errors", strconv.Itoa(result.TotalErrors)},
			{"summary", "error_rate", fmt.Sprintf("%.2f", result.ErrorRate)},
			{"summary", "error_rate_label", contract.GetPlainLabel(result.ErrorRate)},
			{"summary", "skipped_lines", strconv.Itoa(result.SkippedLines)},
			{"summary", "execution_time", fmt.Sprintf("%.3f", result.ExecutionTime)},
		}
		for _, e := range sortedCounts(result.ErrorFrequency) {
			rows = append(rows, []string{"error_frequency", e.Key, strconv.Itoa(e.Count)})
		}
		for _, e := range result.TopErrorAddresses {
			rows = append(rows, []string{"top_error_addresses", e.Key, strconv.Itoa(e.Count)})
		}
		for _, e := range sortedCounts(result.MethodDistribution) {
			rows = append(rows, []string{"method_distribution", e.Key, strconv.Itoa(e.Count)})
		}
		for hour := 0; hour < 24; hour++ {
			if count, ok := result.HourlyErrorPattern[hour]; ok {
				rows = append(rows, []string{"hourly_error_pattern", fmt.Sprintf("%02d", hour), strconv.Itoa(count)})
			}
		}
		for _, e := range result.ErrorPaths {
			rows = append(rows, []string{"error_paths", e.Key, strconv.Itoa(e.Count)})
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// sortedCounts flattens a count map into entries ordered by descending
// count, then key, for stable rendering.
func sortedCounts(counts map[string]int) []schema.CountEntry {
	entries := make([]schema.CountEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, schema.CountEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
