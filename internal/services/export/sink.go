package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/killallgit/labeler/pkg/config"
	"github.com/killallgit/labeler/pkg/fsutil"
)

// Sink stores a finished archive and reports where it went
type Sink interface {
	Name() string
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// LocalSink writes archives to the local file system
type LocalSink struct {
	dir string
}

// NewLocalSink creates a sink that resolves relative names against dir
func NewLocalSink(dir string) *LocalSink {
	return &LocalSink{dir: dir}
}

// Name returns the sink name
func (s *LocalSink) Name() string {
	return config.SinkLocal
}

// Put writes the archive atomically. Absolute names are used as given.
func (s *LocalSink) Put(_ context.Context, name string, data []byte) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, name)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// NewSink creates the sink selected by the export configuration
func NewSink(ctx context.Context, cfg config.ExportConfig) (Sink, error) {
	switch cfg.Sink {
	case config.SinkLocal, "":
		return NewLocalSink(cfg.OutputDir), nil
	case config.SinkS3:
		return NewS3Sink(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSink, cfg.Sink)
	}
}
