package videos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/labeler/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new video repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// UpsertVideo creates the video or updates the entry with the same path
func (r *RepositoryImpl) UpsertVideo(ctx context.Context, video *models.Video) error {
	var existing models.Video
	err := r.db.WithContext(ctx).Where("path = ?", video.Path).First(&existing).Error

	if err == nil {
		video.ID = existing.ID
		video.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
			return fmt.Errorf("updating video: %w", err)
		}
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
			return fmt.Errorf("creating video: %w", err)
		}
		return nil
	}

	return fmt.Errorf("checking existing video: %w", err)
}

// GetVideoByPath retrieves a video by its file path
func (r *RepositoryImpl) GetVideoByPath(ctx context.Context, path string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Where("path = ?", path).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// ListVideos returns registered videos, most recently opened first
func (r *RepositoryImpl) ListVideos(ctx context.Context, limit int) ([]models.Video, error) {
	var videos []models.Video
	q := r.db.WithContext(ctx).Order("last_opened_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// UpdateAnnotationCount stores the number of finalized annotations
func (r *RepositoryImpl) UpdateAnnotationCount(ctx context.Context, path string, count int) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("path = ?", path).
		Update("annotation_count", count)
	if result.Error != nil {
		return fmt.Errorf("updating annotation count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// RecordExport stores where and when the video was last exported
func (r *RepositoryImpl) RecordExport(ctx context.Context, path, exportPath string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("path = ?", path).
		Updates(map[string]any{
			"last_export_path": exportPath,
			"last_exported_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("recording export: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// DeleteVideo removes a video from the registry
func (r *RepositoryImpl) DeleteVideo(ctx context.Context, path string) error {
	result := r.db.WithContext(ctx).Unscoped().Where("path = ?", path).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
