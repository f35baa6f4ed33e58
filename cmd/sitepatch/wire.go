package main

import (
	"log/slog"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/ahocorasick"
	"github.com/jacinteriors/sitepatch/batch"
	"github.com/jacinteriors/sitepatch/fs"
	"github.com/jacinteriors/sitepatch/goquery"
	lochtml "github.com/jacinteriors/sitepatch/html"
	locslog "github.com/jacinteriors/sitepatch/slog"
)

// newExtractor builds the section extractor for rules.
func newExtractor(rules sitepatch.ExtractRules) *goquery.Extractor {
	return goquery.NewExtractor(rules, ahocorasick.Compile)
}

// newRunner wires a batch runner for cfg with logging decorators.
func newRunner(cfg *Config, logger *slog.Logger, dryRun bool, concurrency int) *batch.Runner {
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	runner := &batch.Runner{
		Pages:       locslog.NewLoggingPageStore(fs.NewStore(""), logger),
		Extractor:   locslog.NewLoggingExtractor(newExtractor(cfg.Rules), logger),
		Renderer:    sitepatch.NewSectionRenderer(cfg.ImageURLPrefix),
		Patcher:     locslog.NewLoggingPatcher(lochtml.NewPatcher(), logger),
		Recipes:     cfg.RecipeRegistry(),
		Concurrency: concurrency,
		DryRun:      dryRun,
	}
	if cfg.ImageDir != "" {
		runner.Images = fs.NewImageIndex(cfg.ImageDir)
	}
	if cfg.Sitemap != "" {
		runner.Sitemap = locslog.NewLoggingSitemapUpdater(fs.NewSitemap(cfg.Sitemap, cfg.SiteDir, cfg.SiteURL), logger)
	}
	return runner
}
