package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// historyTimeFormat renders run timestamps in history output.
const historyTimeFormat = "2006-01-02 15:04:05"

// WriteRuns outputs stored runs, dispatching based on the output format
// configured.
func WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs, cfg)
		}, "Wrote table")
	}
}

// writeRunsTable renders stored runs as a table, most recent first.
func writeRunsTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No stored analysis runs.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "When", "Requests", "Errors", "Rate", "Label", "Time"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		label := contract.GetPlainLabel(run.ErrorRate)
		if cfg.UseColors {
			label = contract.GetColorLabel(run.ErrorRate)
		}
		data = append(data, []string{
			strconv.FormatInt(run.ID, 10),
			run.CreatedAt.Format(historyTimeFormat),
			strconv.Itoa(run.TotalRequests),
			strconv.Itoa(run.TotalErrors),
			fmt.Sprintf("%.2f%%", run.ErrorRate),
			label,
			fmt.Sprintf("%.3fs", run.ExecutionTime),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing %d stored runs\n", len(runs))
	return nil
}

// writeRunsCSV writes stored runs in CSV format.
func writeRunsCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"id", "created_at", "total_requests", "total_errors", "error_rate", "label", "execution_time"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, run := range runs {
			rec := []string{
				strconv.FormatInt(run.ID, 10),
				run.CreatedAt.Format(time.RFC3339),
				strconv.Itoa(run.TotalRequests),
				strconv.Itoa(run.TotalErrors),
				fmt.Sprintf("%.2f", run.ErrorRate),
				contract.GetPlainLabel(run.ErrorRate),
				fmt.Sprintf("%.3f", run.ExecutionTime),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStatistics outputs a run-history summary, dispatching based on the
// output format configured.
func WriteStatistics(stats schema.RunStatistics, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeStatisticsText(w, stats, cfg)
	}, "Wrote stats")
}

// writeStatisticsText renders the run-history summary as plain text.
func writeStatisticsText(w io.Writer, stats schema.RunStatistics, cfg *contract.Config) error {
	fmt.Fprintf(w, "Stored runs:        %d\n", stats.RunCount)
	if stats.RunCount == 0 {
		return nil
	}

	label := contract.GetPlainLabel(stats.AvgErrorRate)
	if cfg.UseColors {
		label = contract.GetColorLabel(stats.AvgErrorRate)
	}
	fmt.Fprintf(w, "Average error rate: %.2f%% (%s)\n", stats.AvgErrorRate, label)

	if last := stats.LastRun; last != nil {
		fmt.Fprintf(w, "Last run:           #%d at %s\n", last.ID, last.CreatedAt.Format(historyTimeFormat))
		fmt.Fprintf(w, "  Requests: %d  Errors: %d  Rate: %.2f%%\n",
			last.TotalRequests, last.TotalErrors, last.ErrorRate)
		if len(last.ErrorFrequency) > 0 {
			codes := make([]string, 0, len(last.ErrorFrequency))
			for code := range last.ErrorFrequency {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			fmt.Fprint(w, "  Error codes:")
			for _, code := range codes {
				fmt.Fprintf(w, " %s=%d", code, last.ErrorFrequency[code])
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}
