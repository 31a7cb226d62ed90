package videos

import (
	"context"
	"time"

	"github.com/killallgit/labeler/internal/models"
)

// Repository defines the interface for video registry persistence
type Repository interface {
	// Create or update by path
	UpsertVideo(ctx context.Context, video *models.Video) error

	// Read operations
	GetVideoByPath(ctx context.Context, path string) (*models.Video, error)
	ListVideos(ctx context.Context, limit int) ([]models.Video, error)

	// Update operations
	UpdateAnnotationCount(ctx context.Context, path string, count int) error
	RecordExport(ctx context.Context, path, exportPath string, at time.Time) error

	// Delete operations
	DeleteVideo(ctx context.Context, path string) error
}

// Service defines the business logic interface for the video registry
type Service interface {
	// RecordOpen registers a video the user has just opened
	RecordOpen(ctx context.Context, info FileInfo) (*models.Video, error)
	RecordAnnotationCount(ctx context.Context, path string, count int) error
	RecordExport(ctx context.Context, path, exportPath string) error
	GetVideo(ctx context.Context, path string) (*models.Video, error)
	ListVideos(ctx context.Context, limit int) ([]models.Video, error)
	ForgetVideo(ctx context.Context, path string) error
}

// FileInfo is what is known about a video file when it is opened
type FileInfo struct {
	Path       string
	Hash       int32
	Size       int64
	Duration   float64 // seconds, 0 when unknown
	ModifiedAt time.Time
}
