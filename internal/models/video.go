package models

import (
	"time"

	"gorm.io/gorm"
)

// Video is a registry entry for a media file that has been opened for labeling
type Video struct {
	gorm.Model
	Path            string     `json:"path" gorm:"uniqueIndex;not null"`
	Stem            string     `json:"stem" gorm:"index"`
	Hash            int32      `json:"hash"`
	Size            int64      `json:"size"`
	Duration        float64    `json:"duration"` // Duration in seconds, 0 when unknown
	ModifiedAt      time.Time  `json:"modified_at"`
	LastOpenedAt    time.Time  `json:"last_opened_at"`
	AnnotationCount int        `json:"annotation_count"`
	LastExportPath  string     `json:"last_export_path"`
	LastExportedAt  *time.Time `json:"last_exported_at"`
}

// TableName returns the table name for the Video model
func (Video) TableName() string {
	return "videos"
}
