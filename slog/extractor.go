// Package slog decorates sitepatch services with structured logging.
package slog

import (
	"log/slog"
	"time"

	"github.com/jacinteriors/sitepatch"
)

// Ensure LoggingExtractor implements sitepatch.Extractor.
var _ sitepatch.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   sitepatch.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitepatch.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs section counts.
func (e *LoggingExtractor) Extract(html string, strategies ...sitepatch.Strategy) (sections []sitepatch.Section, err error) {
	defer func(begin time.Time) {
		items := 0
		for _, s := range sections {
			items += len(s.Items)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"strategies", sitepatch.ExpandStrategies(strategies),
			"sections", len(sections),
			"items", items,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, strategies...)
}
