package main

import (
	"fmt"

	"github.com/jacinteriors/sitepatch"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg, err := LoadConfig(configPath(c.Config, deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}
	return runBatch(deps, cfg, c.Only, c.DryRun, c.Concurrency)
}

// runBatch runs the configured jobs and prints the report.
func runBatch(deps *Dependencies, cfg *Config, only []string, dryRun bool, concurrency int) error {
	jobs, err := cfg.Jobs(only)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages configured. Add pages to a group in the config file.")
		return nil
	}

	deps.Logger.Debug("batch started", "config", cfg.Path(), "pages", len(jobs), "dry_run", dryRun)

	runner := newRunner(cfg, deps.Logger, dryRun, concurrency)
	report, err := runner.Run(deps.Ctx, jobs, progressLogger(deps.Ctx, deps.Logger))
	if report != nil {
		logReport(deps.Logger, report)
		writeReport(deps.Stdout, report)
	}
	if err != nil {
		return err
	}

	if _, _, failed := report.Counts(); failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(jobs))
	}
	return nil
}

// configPath returns flag if set, otherwise the default path.
func configPath(flag string, deps *Dependencies) string {
	if flag != "" {
		return flag
	}
	return deps.ConfigPath
}
