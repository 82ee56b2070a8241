// Package watch reloads descriptors when their source files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitedesc/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Reloader performs a wholesale reload.
type Reloader interface {
	Reload(ctx context.Context) (changed bool, err error)
}

// Watcher monitors a set of files and triggers debounced reloads.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	reloader Reloader
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// reloaded receives the outcome of every reload; nil unless set by tests.
	reloaded chan error
}

// New creates a watcher for the given files. Empty paths are skipped.
func New(reloader Reloader, debounce time.Duration, paths ...string) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{files: map[string]bool{}, reloader: reloader, debounce: debounce}
	seenDirs := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
		}
		w.files[abs] = true
		// Watch the directory; editors often replace files instead of writing them.
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.watcher = fw
	return w, nil
}

// Run processes events until ctx is canceled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	slog.Info("Watching for changes", slog.Any("dirs", w.dirs), slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Remove) {
				slog.Warn("Watched file removed", logfields.File(event.Name))
			} else {
				slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) reload(ctx context.Context) {
	start := time.Now()
	changed, err := w.reloader.Reload(ctx)
	if err != nil {
		slog.Error("Reload rejected", logfields.Error(err), logfields.Duration(time.Since(start)))
	} else {
		slog.Debug("Reload finished", slog.Bool("changed", changed), logfields.Duration(time.Since(start)))
	}
	if w.reloaded != nil {
		w.reloaded <- err
	}
}
