package slog

import (
	"log/slog"
	"time"

	"github.com/jacinteriors/sitepatch"
)

// Ensure LoggingPatcher implements sitepatch.Patcher.
var _ sitepatch.Patcher = (*LoggingPatcher)(nil)

// LoggingPatcher wraps a Patcher with debug logging.
type LoggingPatcher struct {
	next   sitepatch.Patcher
	logger *slog.Logger
}

// NewLoggingPatcher creates a new LoggingPatcher.
func NewLoggingPatcher(next sitepatch.Patcher, logger *slog.Logger) *LoggingPatcher {
	return &LoggingPatcher{next: next, logger: logger}
}

// Patch delegates to the wrapped patcher and logs the anchors used.
func (p *LoggingPatcher) Patch(doc string, start, end sitepatch.Anchor, replacement string) (out string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("patch",
			"start", start.String(),
			"end", end.String(),
			"before", len(doc),
			"after", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Patch(doc, start, end, replacement)
}
