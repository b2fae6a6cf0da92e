// ABOUTME: Watch mode: re-runs the optimization when the photo file or config file changes
// ABOUTME: Wraps RunCLI with an fsnotify watcher and a short debounce for atomic writes

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long to wait after a change for atomic writes to complete
const watchDebounce = 100 * time.Millisecond

// RunWatch runs RunCLI once, then again every time the input or config file
// changes, until ctx is canceled. Failed runs are logged and do not stop watching.
func RunWatch(ctx context.Context, opts RunOptions) error {
	if !opts.DryRun && sameFile(opts.InputPath, opts.outputPath()) {
		return errors.New("watch mode cannot write the slideshow over the photo file it watches")
	}

	return watchFiles(ctx, watchedPaths(opts), opts.Logger, func(ctx context.Context) error {
		return RunCLI(ctx, opts)
	})
}

// watchedPaths returns the input file plus the config file when it exists
func watchedPaths(opts RunOptions) []string {
	paths := []string{opts.InputPath}

	if path, _ := opts.configPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	return paths
}

// watchFiles calls run immediately and after each write to one of paths.
// Directories are watched rather than files so editors that replace the file
// (write to temp, then rename) still trigger a run.
func watchFiles(ctx context.Context, paths []string, logger *log.Logger, run func(context.Context) error) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		targets[abs] = true

		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	runOnce := func() error {
		err := run(ctx)
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			logger.Error("run failed, waiting for changes", "err", err)
		}

		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}

	logger.Info("watching for changes", "files", len(targets))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !targets[filepath.Clean(event.Name)] || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			// Debounce: wait a bit for atomic writes to complete, then drop queued duplicates
			if err := sleepCtx(ctx, watchDebounce); err != nil {
				return err
			}
			drainEvents(watcher)

			logger.Info("change detected, re-running", "file", event.Name)

			if err := runOnce(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("watcher overflowed, re-running")

				if err := runOnce(); err != nil {
					return err
				}

				continue
			}

			// Log error but continue watching
			logger.Warn("watcher error", "err", err)
		}
	}
}

// sameFile reports whether two paths resolve to the same location
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	return errA == nil && errB == nil && absA == absB
}

// drainEvents discards events already queued on the watcher
func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}

// sleepCtx waits for d or until ctx is canceled
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
