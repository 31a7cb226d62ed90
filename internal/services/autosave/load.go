package autosave

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/annotations"
)

// Hash mismatch prompt shown before loading a file made for another video
const (
	HashMismatchTitle   = "Hash Mismatch"
	HashMismatchMessage = "The video file used to create these annotations appears to be different.\n" +
		"Loading annotations from a different video may result in incorrect timings.\n" +
		"Would you like to continue loading anyway?"
)

// ReadSnapshotFile reads an annotations document from disk
func ReadSnapshotFile(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes an annotations document
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return &snap, nil
}

// LoadSnapshot decodes an annotations document strictly. When a video is
// open (videoPath non-empty) and the document's hash differs from videoHash
// the user is asked first; declining returns annotations.ErrDeclined. Any
// record missing id, range, shape or comments aborts the whole load.
func LoadSnapshot(snap *models.Snapshot, videoPath string, videoHash int32, confirm Confirmer) ([]*models.Annotation, error) {
	if videoPath != "" && snap.VideoHash != videoHash {
		if !confirm.Confirm(HashMismatchTitle, HashMismatchMessage) {
			return nil, annotations.ErrDeclined
		}
	}

	items, _, err := snap.DecodeAll(true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return items, nil
}

// LoadFile reads and strictly decodes the annotations file at path
func LoadFile(path, videoPath string, videoHash int32, confirm Confirmer) ([]*models.Annotation, error) {
	snap, err := ReadSnapshotFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSnapshot(snap, videoPath, videoHash, confirm)
}
