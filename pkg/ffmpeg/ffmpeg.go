// Package ffmpeg wraps the ffprobe binary to read video metadata.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// FFmpeg wraps ffprobe functionality
type FFmpeg struct {
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffprobePath string, timeout time.Duration) *FFmpeg {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffprobe is available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	return nil
}

// withTimeout bounds a probe by the configured timeout
func (f *FFmpeg) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}
