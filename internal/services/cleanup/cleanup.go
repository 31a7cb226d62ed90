// Package cleanup prunes stale files from a scratch directory.
package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Service removes files matching a suffix once they are older than maxAge
type Service struct {
	dir      string
	suffix   string
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a cleanup service for dir. Only regular files whose
// name ends in suffix are considered.
func NewService(dir, suffix string, maxAge, interval time.Duration) *Service {
	return &Service{
		dir:      dir,
		suffix:   suffix,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs one pass immediately and then one per interval until ctx is
// cancelled or Stop is called
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	// Run initial cleanup
	s.Prune()

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Prune()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}(s.done)

	log.Printf("[INFO] Cleanup service started (interval: %v, max age: %v)", s.interval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Prune removes every stale file and returns how many were removed
func (s *Service) Prune() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[ERROR] Cleanup failed to read %s: %v", s.dir, err)
		}
		return 0
	}

	removed := 0
	cutoff := s.now().Add(-s.maxAge)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), s.suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		log.Printf("[DEBUG] Removing stale file: %s", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove stale file %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[INFO] Removed %d stale file(s) from %s", removed, s.dir)
	}
	return removed
}
