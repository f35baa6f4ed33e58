package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/batch"
	"github.com/jedib0t/go-pretty/v6/table"
)

// maxPathWidth bounds the target column of the report table.
const maxPathWidth = 48

// writeReport renders the outcomes of a batch run as a table followed by
// a one-line summary.
func writeReport(w io.Writer, report *sitepatch.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Page", "Status", "Sections", "Images", "Target", "Reason"})
	for _, o := range report.Outcomes {
		t.AppendRow(table.Row{
			o.Job.Name,
			o.Status,
			o.Sections,
			o.Images,
			batch.TruncatePath(o.Job.Target, maxPathWidth),
			o.Reason,
		})
	}
	t.Render()

	updated, skipped, failed := report.Counts()
	verb := "Updated"
	if report.DryRun {
		verb = "Would update"
	}
	fmt.Fprintf(w, "%s %d, skipped %d, failed %d in %s\n",
		verb, updated, skipped, failed,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

// progressLogger returns a progress callback logging each finished job.
func progressLogger(ctx context.Context, logger *slog.Logger) sitepatch.ProgressFunc {
	return func(p sitepatch.Progress) {
		level := slog.LevelDebug
		if p.Outcome.Status == sitepatch.StatusFailed {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "page done",
			"page", p.Outcome.Job.Name,
			"status", p.Outcome.Status,
			"reason", p.Outcome.Reason,
			"completed", p.Completed,
			"total", p.Total,
		)
	}
}

// logReport logs the summary of a finished run.
func logReport(logger *slog.Logger, report *sitepatch.Report) {
	updated, skipped, failed := report.Counts()
	logger.Info("batch finished",
		"run_id", report.RunID,
		"dry_run", report.DryRun,
		"updated", updated,
		"skipped", skipped,
		"failed", failed,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
}
