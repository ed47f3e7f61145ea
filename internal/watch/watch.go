// Package watch re-runs a callback when watched files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into a single run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors files and directories and invokes OnChange after a quiet period.
type Watcher struct {
	OnChange func(ctx context.Context)
	Debounce time.Duration

	watcher *fsnotify.Watcher
	files   map[string]bool // absolute paths of watched single files
	dirs    map[string]bool // directories watched for all their entries
	ignore  map[string]bool
	mu      sync.Mutex
	timer   *time.Timer
}

// New creates a watcher for the given paths. Directories are watched
// recursively, files through their parent directory. Missing paths are skipped.
func New(paths []string, onChange func(ctx context.Context)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		OnChange: onChange,
		Debounce: DefaultDebounce,
		watcher:  fw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		ignore:   make(map[string]bool),
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		slog.Debug("Skipping missing watch path", logfields.Path(abs))
		return nil
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.watcher.Add(filepath.Dir(abs))
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		w.dirs[p] = true
		return nil
	})
}

// Ignore excludes a file from triggering runs, typically the build output.
func (w *Watcher) Ignore(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		w.ignore[abs] = true
	}
}

// relevant reports whether an event should trigger a run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.ignore[event.Name] || strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	// Entries next to a single watched file are noise unless their
	// directory is watched as a whole.
	return w.files[event.Name] || w.dirs[filepath.Dir(event.Name)]
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.add(event.Name)
				}
			}
			w.schedule(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// schedule resets the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.OnChange(ctx)
	})
}
