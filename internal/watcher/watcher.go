// Package watcher regenerates the doctest output when documentation sources
// change: fsnotify events are debounced into batched rebuild triggers.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// skipDirs are directory names never worth watching.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Watcher watches a root directory and invokes a rebuild callback after a
// quiet period.
type Watcher struct {
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	ignoreFiles  map[string]bool
	rebuild      func(ctx context.Context, changed []string)
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// New creates a watcher over rootDir. rebuild runs on the watch goroutine
// after changes settle, with the batch of changed relative paths.
// ignoreFiles lists files whose events are discarded; the rebuild outputs
// must be listed here when they land inside the root, or every rebuild's
// write retriggers the next rebuild.
func New(rootDir string, ignoreFiles []string, rebuild func(ctx context.Context, changed []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ignored := make(map[string]bool, len(ignoreFiles))
	for _, f := range ignoreFiles {
		if abs, err := filepath.Abs(f); err == nil {
			ignored[abs] = true
		}
	}

	w := &Watcher{
		rootDir:      rootDir,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		ignoreFiles:  ignored,
		rebuild:      rebuild,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	rebuildCh := make(chan struct{}, 1)
	changed := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			relPath, _ := filepath.Rel(w.rootDir, event.Name)
			changed[filepath.ToSlash(relPath)] = true

			// New directories need watches of their own.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})

		case <-rebuildCh:
			if len(changed) == 0 {
				continue
			}
			batch := make([]string, 0, len(changed))
			for path := range changed {
				batch = append(batch, path)
			}
			changed = make(map[string]bool)

			log.Printf("Rebuilding after changes in %d file(s)...", len(batch))
			w.rebuild(ctx, batch)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil && w.ignoreFiles[abs] {
		return false
	}
	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if skipDirs[part] {
			return false
		}
	}
	return true
}

func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
