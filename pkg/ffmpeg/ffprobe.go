package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string            `json:"duration"`
		Size       string            `json:"size"`
		FormatName string            `json:"format_name"`
		Tags       map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		CodecType    string            `json:"codec_type"`
		CodecName    string            `json:"codec_name"`
		Width        int               `json:"width"`
		Height       int               `json:"height"`
		AvgFrameRate string            `json:"avg_frame_rate"`
		Duration     string            `json:"duration"`
		Tags         map[string]string `json:"tags"`
	} `json:"streams"`
}

// GetMetadata extracts metadata from a video file using ffprobe
func (f *FFmpeg) GetMetadata(ctx context.Context, filePath string) (*VideoMetadata, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "v:0", // Select first video stream
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewProcessingError("metadata_extraction", filePath, ErrProcessingTimeout, stderr.String())
		}
		return nil, NewProcessingError("metadata_extraction", filePath, err, stderr.String())
	}

	return ParseMetadata(stdout.Bytes(), filePath)
}

// ParseMetadata converts raw ffprobe JSON output to VideoMetadata
func ParseMetadata(data []byte, filePath string) (*VideoMetadata, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, NewProcessingError("metadata_parsing", filePath, err, "")
	}

	metadata := &VideoMetadata{Format: output.Format.FormatName}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			metadata.Duration = duration
		}
	}
	if output.Format.Size != "" {
		if size, err := strconv.ParseInt(output.Format.Size, 10, 64); err == nil {
			metadata.Size = size
		}
	}
	if tags := output.Format.Tags; tags != nil {
		metadata.CreatedRaw = tags["creation_time"]
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "video" {
			continue
		}
		metadata.Codec = stream.CodecName
		metadata.Width = stream.Width
		metadata.Height = stream.Height
		metadata.FrameRate = parseRate(stream.AvgFrameRate)
		if rotate, err := strconv.Atoi(stream.Tags["rotate"]); err == nil {
			metadata.Rotation = rotate
		}

		// Use stream duration if format duration is not available
		if metadata.Duration == 0 && stream.Duration != "" {
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				metadata.Duration = duration
			}
		}
		break
	}

	if metadata.Codec == "" || metadata.Duration <= 0 {
		return nil, NewProcessingError("metadata_validation", filePath,
			fmt.Errorf("%w: no video stream with a duration", ErrInvalidVideoFile), "")
	}

	return metadata, nil
}

// parseRate reads ffprobe's "num/den" frame rate notation
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
