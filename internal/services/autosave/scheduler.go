package autosave

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval is the save period used when none is configured
const DefaultInterval = 5 * time.Minute

// Scheduler calls a save function on a fixed period until stopped
type Scheduler struct {
	interval time.Duration
	save     func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler. A non-positive interval falls back to
// DefaultInterval.
func NewScheduler(interval time.Duration, save func()) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		save:     save,
	}
}

// Interval returns the save period
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start begins ticking. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.save()
			case <-ctx.Done():
				log.Println("[INFO] Autosave scheduler stopped")
				return
			}
		}
	}(s.done)

	log.Printf("[INFO] Autosave scheduler started (interval: %v)", s.interval)
}

// Stop stops ticking and waits for an in-flight save to finish
func (s *Scheduler) Stop() {
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
