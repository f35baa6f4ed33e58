package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jacinteriors/sitepatch"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	path := configPath(c.Config, deps)
	cfg, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepatch.ErrorMessage(err))
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	configFile, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dirs := newWatchedDirs(watcher)
	if err := dirs.sync(cfg); err != nil {
		return err
	}
	backupDir := dirs.backupDir

	rerun := func() {
		cfg, err := LoadConfig(path)
		if err != nil {
			deps.Logger.Error("config reload failed", "config", path, "err", err)
			return
		}
		if err := dirs.sync(cfg); err != nil {
			deps.Logger.Warn("watch update failed", "err", err)
		}
		backupDir = dirs.backupDir
		if err := runBatch(deps, cfg, nil, c.DryRun, 0); err != nil {
			deps.Logger.Warn("batch incomplete", "err", err)
		}
	}

	if err := runBatch(deps, cfg, nil, c.DryRun, 0); err != nil {
		deps.Logger.Warn("batch incomplete", "err", err)
	}
	fmt.Fprintf(deps.Stderr, "Watching %s and %s. Press Ctrl+C to stop.\n", configFile, backupDir)

	match := func(ev fsnotify.Event) bool {
		return RelevantEvent(ev, configFile, backupDir)
	}
	err = DebounceEvents(deps.Ctx, watcher.Events, watcher.Errors, c.Debounce, match, rerun)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchedDirs keeps a watcher on the directories of the current config.
type watchedDirs struct {
	watcher   *fsnotify.Watcher
	dirs      map[string]bool
	backupDir string
}

func newWatchedDirs(w *fsnotify.Watcher) *watchedDirs {
	return &watchedDirs{watcher: w, dirs: make(map[string]bool)}
}

// sync watches cfg's directories and drops directories it no longer names.
// A directory that cannot be added stays unwatched until the next sync.
func (d *watchedDirs) sync(cfg *Config) error {
	backupDir, err := filepath.Abs(cfg.BackupDir)
	if err != nil {
		return err
	}
	d.backupDir = backupDir

	want := make(map[string]bool)
	for _, p := range cfg.WatchPaths() {
		dir, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		want[dir] = true
	}

	for dir := range d.dirs {
		if !want[dir] {
			_ = d.watcher.Remove(dir)
			delete(d.dirs, dir)
		}
	}

	var errs []error
	for dir := range want {
		if d.dirs[dir] {
			continue
		}
		if err := d.watcher.Add(dir); err != nil {
			errs = append(errs, fmt.Errorf("watching %s: %w", dir, err))
			continue
		}
		d.dirs[dir] = true
	}
	return errors.Join(errs...)
}

// RelevantEvent reports whether ev changes the config file or a backup page.
func RelevantEvent(ev fsnotify.Event, configFile, backupDir string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if name == configFile {
		return true
	}
	if filepath.Dir(name) != backupDir || strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// DebounceEvents calls fn once events matching match have been quiet for
// wait. It returns when ctx is done or a channel closes.
func DebounceEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, wait time.Duration, match func(fsnotify.Event) bool, fn func()) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !match(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		case <-fire:
			fire = nil
			fn()
		}
	}
}
