package main

import (
	"encoding/json"
	"fmt"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/fs"
	"github.com/jacinteriors/sitepatch/htmltomarkdown"
	locslog "github.com/jacinteriors/sitepatch/slog"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	strategy, err := sitepatch.ParseStrategy(c.Strategy)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}

	rules := sitepatch.DefaultExtractRules()
	if c.Config != "" {
		cfg, err := LoadConfig(c.Config)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
			return err
		}
		rules = cfg.Rules
	}

	source, err := fs.NewStore("").ReadPage(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}

	extractor := locslog.NewLoggingExtractor(newExtractor(rules), deps.Logger)
	sections, err := extractor.Extract(source, strategy)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}

	if len(sections) == 0 && c.Format != "json" {
		fmt.Fprintln(deps.Stderr, "No content extracted.")
		return nil
	}

	switch c.Format {
	case "json":
		if sections == nil {
			sections = []sitepatch.Section{}
		}
		data, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding sections: %w", err)
		}
		fmt.Fprintln(deps.Stdout, string(data))
	case "html":
		fmt.Fprintln(deps.Stdout, sitepatch.NewSectionRenderer("").Render(sections))
	case "markdown":
		md, err := htmltomarkdown.NewConverter().Convert(sitepatch.NewSectionRenderer("").Render(sections))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
	default:
		fmt.Fprintln(deps.Stdout, sitepatch.FormatSections(sections))
	}
	return nil
}
