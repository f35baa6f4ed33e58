package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacinteriors/sitepatch"
)

// Ensure LoggingPageStore implements sitepatch.PageStore.
var _ sitepatch.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with logging. Reads log at debug
// level; writes log at info level since they change the site.
type LoggingPageStore struct {
	next   sitepatch.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next sitepatch.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// ReadPage delegates to the wrapped store and logs the read.
func (s *LoggingPageStore) ReadPage(ctx context.Context, path string) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read page",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadPage(ctx, path)
}

// WritePage delegates to the wrapped store and logs the write.
func (s *LoggingPageStore) WritePage(ctx context.Context, path string, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write page",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WritePage(ctx, path, content)
}

// Ensure LoggingSitemapUpdater implements sitepatch.SitemapUpdater.
var _ sitepatch.SitemapUpdater = (*LoggingSitemapUpdater)(nil)

// LoggingSitemapUpdater wraps a SitemapUpdater with logging.
type LoggingSitemapUpdater struct {
	next   sitepatch.SitemapUpdater
	logger *slog.Logger
}

// NewLoggingSitemapUpdater creates a new LoggingSitemapUpdater.
func NewLoggingSitemapUpdater(next sitepatch.SitemapUpdater, logger *slog.Logger) *LoggingSitemapUpdater {
	return &LoggingSitemapUpdater{next: next, logger: logger}
}

// Touch delegates to the wrapped updater and logs the number of entries changed.
func (s *LoggingSitemapUpdater) Touch(ctx context.Context, paths []string, at time.Time) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap lastmod",
			"pages", len(paths),
			"changed", n,
			"date", at.Format("2006-01-02"),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Touch(ctx, paths, at)
}
