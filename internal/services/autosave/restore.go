package autosave

import (
	"log"

	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
)

// Recovery outcomes, used as the metrics label
const (
	RecoveryNone     = "none"
	RecoveryRestored = "restored"
	RecoveryDeclined = "declined"
)

// RecoveryTitle is the title of the recovery prompt
const RecoveryTitle = "Autosave Found"

// Confirmer asks the user a yes/no question. annotations.UI satisfies it.
type Confirmer interface {
	Confirm(title, message string) bool
}

// RecoveryPrompt builds the recovery question. The changed-video warning is
// only included when the video could be hashed and the hash differs.
func RecoveryPrompt(videoHash int32, matches bool) string {
	msg := "An autosaved version of the annotations was found."
	if videoHash != 0 && !matches {
		msg += "\nWarning: The video file appears to have changed since the autosave."
	}
	return msg + "\nWould you like to restore from autosave or start over?"
}

// Restore decodes a snapshot leniently: records missing their id or range are
// skipped and counted
func Restore(snap *models.Snapshot) ([]*models.Annotation, int, int) {
	if snap == nil {
		return nil, 0, 0
	}
	items, skipped, _ := snap.DecodeAll(false)
	return items, len(items), skipped
}

// Recover offers the autosaved snapshot of a video to the user. On yes the
// restored annotations are returned with restored=true. On no the snapshot
// is deleted so the question is not asked again.
func (m *Manager) Recover(videoPath string, videoHash int32, confirm Confirmer) ([]*models.Annotation, bool) {
	snap, matches := m.Check(videoPath, videoHash)
	if snap == nil {
		metrics.RecordRecovery(RecoveryNone)
		return nil, false
	}

	if !confirm.Confirm(RecoveryTitle, RecoveryPrompt(videoHash, matches)) {
		if err := m.Delete(videoPath); err != nil {
			log.Printf("[WARN] %v", err)
		}
		metrics.RecordRecovery(RecoveryDeclined)
		log.Printf("[INFO] Discarded autosave for %s", videoPath)
		return nil, false
	}

	items, loaded, skipped := Restore(snap)
	if skipped > 0 {
		log.Printf("[WARN] Skipped %d malformed autosave record(s) for %s", skipped, videoPath)
	}
	metrics.RecordRecovery(RecoveryRestored)
	log.Printf("[INFO] Restored %d annotation(s) from autosave for %s", loaded, videoPath)
	return items, true
}
