package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/batch"
	"github.com/jacinteriors/sitepatch/fs"
	lochtml "github.com/jacinteriors/sitepatch/html"
	locslog "github.com/jacinteriors/sitepatch/slog"
)

// Run executes the patch command.
func (c *PatchCmd) Run(deps *Dependencies) error {
	slug := c.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(c.Target), filepath.Ext(c.Target))
	}

	recipes := sitepatch.NewRecipeRegistry(sitepatch.DefaultRecipes()...)
	if _, err := recipes.Get(c.Recipe); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'sitepatch recipes' to see available recipes.\n", sitepatch.ErrorMessage(err))
		return err
	}

	runner := &batch.Runner{
		Pages:     locslog.NewLoggingPageStore(fs.NewStore(""), deps.Logger),
		Extractor: locslog.NewLoggingExtractor(newExtractor(sitepatch.DefaultExtractRules()), deps.Logger),
		Renderer:  sitepatch.NewSectionRenderer(c.Prefix),
		Patcher:   locslog.NewLoggingPatcher(lochtml.NewPatcher(), deps.Logger),
		Recipes:   recipes,
		DryRun:    c.DryRun,
	}
	if c.Images != "" {
		runner.Images = fs.NewImageIndex(c.Images)
	}

	report, err := runner.Run(deps.Ctx, []sitepatch.Job{{
		Name:   slug,
		Source: c.Source,
		Target: c.Target,
		Recipe: c.Recipe,
	}}, nil)
	if err != nil {
		return err
	}
	logReport(deps.Logger, report)

	o := report.Outcomes[0]
	switch o.Status {
	case sitepatch.StatusFailed:
		fmt.Fprintf(deps.Stderr, "error: %s\n", o.Reason)
		return fmt.Errorf("patching %s failed: %s", c.Target, o.Reason)
	case sitepatch.StatusSkipped:
		fmt.Fprintf(deps.Stdout, "Skipped %s: %s\n", c.Target, o.Reason)
	default:
		verb := "Updated"
		if c.DryRun {
			verb = "Would update"
		}
		fmt.Fprintf(deps.Stdout, "%s %s (%d sections, %d images)\n", verb, c.Target, o.Sections, o.Images)
	}
	return nil
}
