// Package media keeps track of the video file backing the open session.
package media

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/killallgit/labeler/internal/services/autosave"
)

// DefaultDebounce is the quiet period after the last file event before the
// video is re-hashed
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called with the new size hash after the tracked video changed
type ChangeFunc func(path string, hash int32)

// Watcher re-hashes the tracked video whenever it changes on disk. The parent
// directory is watched rather than the file so that replace-by-rename writes
// are seen.
type Watcher struct {
	debounce time.Duration
	onChange ChangeFunc
	fsw      *fsnotify.Watcher

	mu   sync.Mutex
	path string
	dir  string
	hash int32
}

// NewWatcher creates a watcher. It tracks nothing until Track is called.
func NewWatcher(debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
	}, nil
}

// Track switches the watcher to a new video. hash is the value the session
// currently holds for it.
func (w *Watcher) Track(path string, hash int32) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != dir {
		if w.dir != "" {
			if err := w.fsw.Remove(w.dir); err != nil {
				log.Printf("[DEBUG] Failed to stop watching %s: %v", w.dir, err)
			}
		}
		if err := w.fsw.Add(dir); err != nil {
			w.dir = ""
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dir = dir
	}
	w.path = abs
	w.hash = hash
	log.Printf("[DEBUG] Watching video %s", abs)
	return nil
}

// Tracked returns the tracked video path, empty when none
func (w *Watcher) Tracked() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Run processes file events until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Println("[INFO] Video watcher stopped")
			return nil

		case <-timerCh:
			w.rehash()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) != w.Tracked() {
				continue
			}
			schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[ERROR] Video watcher error: %v", err)
		}
	}
}

// rehash recomputes the tracked video's hash and reports a change
func (w *Watcher) rehash() {
	w.mu.Lock()
	path, old := w.path, w.hash
	w.mu.Unlock()
	if path == "" {
		return
	}

	hash := autosave.CalculateVideoHash(path)
	if hash == 0 {
		log.Printf("[WARN] Video %s is missing, keeping hash %d", path, old)
		return
	}
	if hash == old {
		return
	}

	w.mu.Lock()
	if w.path != path {
		w.mu.Unlock()
		return
	}
	w.hash = hash
	w.mu.Unlock()

	log.Printf("[WARN] Video %s changed on disk (hash %d -> %d)", path, old, hash)
	if w.onChange != nil {
		w.onChange(path, hash)
	}
}

// Close releases the underlying watcher
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
