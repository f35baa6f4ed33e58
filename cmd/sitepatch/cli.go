package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// ConfigPath is used when a command has no --config flag value.
	ConfigPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug details to stderr"`

	Run     RunCmd     `cmd:"" help:"Regenerate all configured pages from the backup"`
	Extract ExtractCmd `cmd:"" help:"Show the sections extracted from a backup page"`
	Patch   PatchCmd   `cmd:"" help:"Regenerate one page from one backup page"`
	Recipes RecipesCmd `cmd:"" help:"List available recipes"`
	Watch   WatchCmd   `cmd:"" help:"Re-run whenever the config or backup changes"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config      string   `short:"f" type:"path" help:"Config file (.yaml, .yml or .toml); defaults to $SITEPATCH_CONFIG"`
	DryRun      bool     `short:"n" help:"Report what would change without writing"`
	Only        []string `short:"o" help:"Limit the run to these page slugs (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent page limit (overrides config)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" type:"existingfile" help:"Backup HTML file"`
	Strategy string `short:"s" default:"auto" enum:"auto,description-block,heading-delimited" help:"Extraction strategy (auto, description-block, heading-delimited)"`
	Format   string `short:"F" default:"text" enum:"text,json,html,markdown" help:"Output format (text, json, html, markdown)"`
	Config   string `short:"f" type:"path" help:"Config file supplying extraction rules"`
}

// PatchCmd is the "patch" subcommand.
type PatchCmd struct {
	Source string `arg:"" type:"existingfile" help:"Backup HTML file"`
	Target string `arg:"" type:"existingfile" help:"Site HTML file to patch"`
	Recipe string `short:"r" default:"city-sections" help:"Recipe name"`
	Slug   string `help:"Gallery image slug; defaults to the target file name"`
	Images string `type:"path" help:"Image directory for gallery recipes"`
	Prefix string `default:"/images/" help:"Image URL prefix for gallery recipes"`
	DryRun bool   `short:"n" help:"Report what would change without writing"`
}

// RecipesCmd is the "recipes" subcommand.
type RecipesCmd struct {
	Config string `short:"f" type:"path" help:"Config file with additional recipes"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Config   string        `short:"f" type:"path" help:"Config file; defaults to $SITEPATCH_CONFIG"`
	DryRun   bool          `short:"n" help:"Report what would change without writing"`
	Debounce time.Duration `default:"500ms" help:"Quiet period before re-running"`
}
