package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/vsgen/internal/ctxlog"
)

// DefaultDebounce is the quiet period after the last event before the callback runs.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the sorted, de-duplicated files that changed.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches files with the given extensions below a set of roots.
type Watcher struct {
	fsw        *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
	// recursive holds directories watched as part of a directory root. Other watched
	// directories only report the explicitly named files.
	recursive map[string]bool
	fileDirs  map[string]bool
	files     map[string]bool
}

// New creates a watcher. Directories are watched recursively; a file root watches its
// directory but only reports that file.
func New(roots []string, extensions ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:        fsw,
		extensions: extensions,
		debounce:   DefaultDebounce,
		recursive:  make(map[string]bool),
		fileDirs:   make(map[string]bool),
		files:      make(map[string]bool),
	}
	for _, root := range roots {
		if err := w.addRoot(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounce changes the quiet period.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRoot(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		file := filepath.Clean(root)
		w.files[file] = true
		dir := filepath.Dir(file)
		if w.fileDirs[dir] || w.recursive[dir] {
			return nil
		}
		w.fileDirs[dir] = true
		return w.fsw.Add(dir)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		path = filepath.Clean(path)
		if w.recursive[path] {
			return nil
		}
		w.recursive[path] = true
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event path should trigger a rebuild.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if !w.recursive[filepath.Dir(path)] && !w.files[path] {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run delivers debounced changes to fn until ctx is cancelled. Errors from fn are
// logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	logger := ctxlog.FromContext(ctx)
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.recursive[filepath.Dir(filepath.Clean(event.Name))] {
						if err := w.addRoot(event.Name); err != nil {
							logger.Warn("Could not watch new directory.", "path", event.Name, "error", err)
						}
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			logger.Debug("Source change detected.", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			if err := fn(ctx, changed); err != nil {
				logger.Error("Rebuild failed.", "error", err)
			}
		}
	}
}
