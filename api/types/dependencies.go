package types

import (
	"github.com/killallgit/labeler/internal/database"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/killallgit/labeler/internal/services/autosave"
	"github.com/killallgit/labeler/internal/services/catalog"
	"github.com/killallgit/labeler/internal/services/export"
	"github.com/killallgit/labeler/internal/services/media"
	"github.com/killallgit/labeler/internal/services/videos"
	"github.com/killallgit/labeler/pkg/ffmpeg"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Session  *annotations.Session
	Hooks    []annotations.MutationHook
	Autosave *autosave.Manager
	Exporter *export.Exporter
	Sink     export.Sink
	Catalog  *catalog.Catalog
	Videos   videos.Service
	Probe    *ffmpeg.FFmpeg
	Watcher  *media.Watcher

	// DisableAlerts skips the catalog compatibility prompt on label edits
	DisableAlerts bool

	// Version is reported by the version endpoint
	Version string
}
