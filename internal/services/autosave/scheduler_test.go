package autosave

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewScheduler(0, func() {}).Interval())
	assert.Equal(t, time.Second, NewScheduler(time.Second, func() {}).Interval())
}

func TestScheduler_TicksUntilStopped(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(10*time.Millisecond, func() { calls.Add(1) })

	s.Start(context.Background())
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	s.Stop()
}

func TestScheduler_StopsWithContext(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(10*time.Millisecond, func() { calls.Add(1) })

	s.Start(ctx)
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}
