package autosave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
    "annotations": [
        {"id": "a1", "range": {"start": 0, "end": 5}, "shape": {}, "comments": [{"body": "[{\"category\":\"POSTURE\",\"selectedValue\":\"Sitting\"}]"}]},
        {"id": "a2", "range": {"start": 5, "end": 9}, "shape": {}, "comments": []}
    ],
    "videoHash": 1661
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		videoPath string
		videoHash int32
		answer    *bool
		wantCount int
		wantErr   error
	}{
		{
			name:      "no video open skips hash check",
			content:   validDoc,
			wantCount: 2,
		},
		{
			name:      "matching hash",
			content:   validDoc,
			videoPath: "/videos/a.mp4",
			videoHash: 1661,
			wantCount: 2,
		},
		{
			name:      "mismatch accepted",
			content:   validDoc,
			videoPath: "/videos/a.mp4",
			videoHash: 7,
			answer:    boolPtr(true),
			wantCount: 2,
		},
		{
			name:      "mismatch declined",
			content:   validDoc,
			videoPath: "/videos/a.mp4",
			videoHash: 7,
			answer:    boolPtr(false),
			wantErr:   annotations.ErrDeclined,
		},
		{
			name:    "missing comments aborts",
			content: `{"annotations":[{"id":"a1","range":{"start":0,"end":5},"shape":{}}],"videoHash":0}`,
			wantErr: ErrLoadFailed,
		},
		{
			name:    "missing id aborts",
			content: `{"annotations":[{"range":{"start":0,"end":5},"shape":{},"comments":[]}],"videoHash":0}`,
			wantErr: ErrLoadFailed,
		},
		{
			name:    "invalid json",
			content: `{"annotations": [`,
			wantErr: ErrLoadFailed,
		},
		{
			name:      "absent hash counts as zero",
			content:   `{"annotations":[]}`,
			videoPath: "/videos/a.mp4",
			videoHash: 0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirm := new(MockConfirmer)
			if tt.answer != nil {
				confirm.On("Confirm", HashMismatchTitle, HashMismatchMessage).Return(*tt.answer)
			}

			items, err := LoadFile(writeDoc(t, tt.content), tt.videoPath, tt.videoHash, confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, items)
			} else {
				require.NoError(t, err)
				assert.Len(t, items, tt.wantCount)
			}
			confirm.AssertExpectations(t)
			if tt.answer == nil {
				confirm.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), "", 0, new(MockConfirmer))
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func boolPtr(b bool) *bool {
	return &b
}
