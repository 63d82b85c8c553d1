package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay batches the burst of filesystem events an editor emits for
// a single save into one pipeline run.
const debounceDelay = 250 * time.Millisecond

// Watch runs the pipeline once, then re-runs it whenever a manifest under
// the configured path changes. A failed run is reported and watching
// continues. Watch returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	if err := a.Run(ctx); err != nil {
		a.logger.Error("Composition failed, watching for changes.", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start manifest watcher: %w", err)
	}
	defer watcher.Close()

	if err := a.addWatchPaths(watcher); err != nil {
		return err
	}
	a.logger.Info("Watching for manifest changes.", "path", a.config.ManifestPath)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Stopping manifest watcher.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories are not picked up by the initial walk.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !a.relevant(event) {
				continue
			}
			a.logger.Debug("Manifest change detected.", "file", event.Name, "op", event.Op.String())
			debounce = time.After(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Manifest watcher error.", "error", err)

		case <-debounce:
			debounce = nil
			if err := a.Run(ctx); err != nil {
				a.logger.Error("Composition failed, watching for changes.", "error", err)
			}
		}
	}
}

// addWatchPaths registers the manifest path with the watcher. For a single
// file the parent directory is watched instead, since editors typically
// replace files on save. For a directory every subdirectory is registered.
func (a *App) addWatchPaths(w *fsnotify.Watcher) error {
	info, err := os.Stat(a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.config.ManifestPath, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(a.config.ManifestPath))
	}
	return filepath.WalkDir(a.config.ManifestPath, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// relevant reports whether a filesystem event should trigger a re-run.
func (a *App) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	if filepath.Clean(event.Name) == filepath.Clean(a.config.ManifestPath) {
		return true
	}
	return strings.HasSuffix(event.Name, ".hcl")
}
