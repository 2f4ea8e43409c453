// This file implements a file system watcher that tags new archives as
// they land in a directory. It uses OS-level file system events and a
// debounce window so an archive is only processed once its writer is
// done with it.

package library

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherService watches a directory tree for new CBZ archives and runs
// the updater on them. The updater must be built with noClobber set:
// the rewrite emits its own filesystem events, and the metadata the
// rewrite just embedded is what stops the loop.
type WatcherService struct {
	root          string
	updater       *Updater
	watcher       *fsnotify.Watcher
	changedPaths  map[string]bool
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a watcher for the given directory tree.
func NewWatcherService(root string, updater *Updater) *WatcherService {
	return &WatcherService{
		root:          root,
		updater:       updater,
		changedPaths:  make(map[string]bool),
		debounceDelay: 2 * time.Second, // Wait for writers to finish before updating
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the directory for changes.
func (w *WatcherService) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	// Watch the root directory recursively. Files are watched via their
	// parent directory.
	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for: %s", w.root)

	go w.processEvents()
	return nil
}

// Stop stops the watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Chmod events fire when files are merely opened or browsed.
	if event.Op == fsnotify.Chmod {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	isDir := err == nil && info.IsDir()

	// New subdirectories join the watch list.
	if event.Op&fsnotify.Create == fsnotify.Create && isDir {
		w.watcher.Add(event.Name)
		return
	}

	if !isDir && isArchive(event.Name) {
		w.mu.Lock()
		w.changedPaths[event.Name] = true
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.debounceTimer = time.AfterFunc(w.debounceDelay, w.updateChanged)
		w.mu.Unlock()
	}
}

func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cbz")
}

// updateChanged drains the changed-path set and updates each archive.
func (w *WatcherService) updateChanged() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.changedPaths))
	for path := range w.changedPaths {
		paths = append(paths, path)
	}
	w.changedPaths = make(map[string]bool)
	w.mu.Unlock()

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			// Gone again before the debounce window closed.
			continue
		}
		status, err := w.updater.UpdateArchive(path)
		switch status {
		case StatusDone:
			log.Printf("Updated metadata in '%s'.", path)
		case StatusSkipped:
			log.Printf("Skipped '%s': archive already has metadata.", path)
		case StatusFailed:
			log.Printf("ERROR: failed to update '%s': %v", path, err)
		}
	}
}
