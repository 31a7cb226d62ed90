package videos

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/labeler/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	now        func() time.Time
}

// NewService creates a new video registry service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
		now:        time.Now,
	}
}

// RecordOpen registers or refreshes a video entry. The annotation count and
// export fields of an existing entry are preserved.
func (s *ServiceImpl) RecordOpen(ctx context.Context, info FileInfo) (*models.Video, error) {
	if strings.TrimSpace(info.Path) == "" {
		return nil, ErrInvalidPath
	}

	video, err := s.repository.GetVideoByPath(ctx, info.Path)
	if err != nil {
		if !errors.Is(err, ErrVideoNotFound) {
			return nil, err
		}
		video = &models.Video{Path: info.Path}
	}

	video.Stem = Stem(info.Path)
	video.Hash = info.Hash
	video.Size = info.Size
	video.ModifiedAt = info.ModifiedAt
	video.LastOpenedAt = s.now()
	if info.Duration > 0 {
		video.Duration = info.Duration
	}

	if err := s.repository.UpsertVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// RecordAnnotationCount stores the current number of finalized annotations
func (s *ServiceImpl) RecordAnnotationCount(ctx context.Context, path string, count int) error {
	return s.repository.UpdateAnnotationCount(ctx, path, count)
}

// RecordExport stores the destination of the latest export
func (s *ServiceImpl) RecordExport(ctx context.Context, path, exportPath string) error {
	return s.repository.RecordExport(ctx, path, exportPath, s.now())
}

// GetVideo retrieves a registry entry by path
func (s *ServiceImpl) GetVideo(ctx context.Context, path string) (*models.Video, error) {
	return s.repository.GetVideoByPath(ctx, path)
}

// ListVideos lists registry entries, most recently opened first
func (s *ServiceImpl) ListVideos(ctx context.Context, limit int) ([]models.Video, error) {
	return s.repository.ListVideos(ctx, limit)
}

// ForgetVideo removes a registry entry
func (s *ServiceImpl) ForgetVideo(ctx context.Context, path string) error {
	return s.repository.DeleteVideo(ctx, path)
}

// Stem returns the file name without directory and final extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
