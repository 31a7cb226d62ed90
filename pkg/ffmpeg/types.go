package ffmpeg

// VideoMetadata represents metadata extracted from a video file
type VideoMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	Width      int     `json:"width"`       // Frame width in pixels
	Height     int     `json:"height"`      // Frame height in pixels
	FrameRate  float64 `json:"frame_rate"`  // Frames per second
	Format     string  `json:"format"`      // Container format (mov,mp4,..., matroska, etc.)
	Codec      string  `json:"codec"`       // Video codec
	Size       int64   `json:"size"`        // File size in bytes
	Rotation   int     `json:"rotation"`    // Display rotation in degrees
	CreatedRaw string  `json:"created_raw"` // creation_time tag as reported
}

// DurationMs returns the duration in whole milliseconds
func (m *VideoMetadata) DurationMs() int64 {
	return int64(m.Duration * 1000)
}
