package dashboard

import (
	"github.com/maniprasoon/Log-File-Analyzer/internal/contract"
	"github.com/maniprasoon/Log-File-Analyzer/schema"
)

// indexData feeds the overview page template.
type indexData struct {
	Runs  []runView
	Stats schema.RunStatistics
}

// runView is one table row on the overview page.
type runView struct {
	ID            int64
	When          string
	TotalRequests int
	TotalErrors   int
	ErrorRate     float64
	Label         string
}

func runsToViews(runs []schema.RunRecord) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runView{
			ID:            run.ID,
			When:          run.CreatedAt.Format("2006-01-02 15:04:05"),
			TotalRequests: run.TotalRequests,
			TotalErrors:   run.TotalErrors,
			ErrorRate:     run.ErrorRate,
			Label:         contract.GetPlainLabel(run.ErrorRate),
		})
	}
	return views
}
