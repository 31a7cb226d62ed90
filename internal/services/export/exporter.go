// Package export builds the label archive handed to downstream tools and
// writes it to a sink.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
)

// LabelsFile is the archive entry holding the annotation document
const LabelsFile = "labels.json"

// Input is everything an export needs from the session
type Input struct {
	VideoPath   string
	VideoHash   int32
	Annotations []*models.Annotation
}

// Result describes a written archive
type Result struct {
	Location string `json:"location"`
	Sink     string `json:"sink"`
	Size     int    `json:"size"`
	Files    int    `json:"files"`
	Skipped  int    `json:"skipped"`
}

// Exporter renders export archives
type Exporter struct {
	now func() time.Time
}

// NewExporter creates an exporter using the local clock
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// anchorTime returns the modification time of the video, or now when the
// video is unknown or missing
func (e *Exporter) anchorTime(videoPath string) time.Time {
	if videoPath != "" {
		if info, err := os.Stat(videoPath); err == nil {
			return info.ModTime().Local()
		}
	}
	return e.now().Local()
}

// Build renders the zip archive: labels.json plus one CSV per category that
// has at least one row. Annotations whose label cannot be used are logged and
// left out of the CSVs; they are still written to labels.json. It also
// returns the number of entries and skipped annotations.
func (e *Exporter) Build(in Input) ([]byte, int, int, error) {
	snap, err := models.NewSnapshot(in.Annotations, in.VideoHash, "")
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build labels document: %w", err)
	}
	doc, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode labels document: %w", err)
	}

	at := newAnchors(e.anchorTime(in.VideoPath))
	tables := make(map[string][][]string, len(categoryFiles))
	skipped := 0
	for _, ann := range in.Annotations {
		if ann.Label == nil {
			log.Printf("[WARN] Error processing annotation %s: no decodable label", ann.ID)
			skipped++
			continue
		}
		for file, row := range at.rows(ann, *ann.Label) {
			tables[file] = append(tables[file], row)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := 0
	if err := writeEntry(zw, LabelsFile, doc); err != nil {
		return nil, 0, 0, err
	}
	files++

	for _, cf := range categoryFiles {
		rows := tables[cf.File]
		if len(rows) == 0 {
			continue
		}
		data, err := encodeCSV(rows)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to encode %s: %w", cf.File, err)
		}
		if err := writeEntry(zw, cf.File, data); err != nil {
			return nil, 0, 0, err
		}
		files++
	}

	if err := zw.Close(); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), files, skipped, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ArchiveName is the default archive name for a video: its stem followed by
// _labels.zip, or labels.zip when no video is open
func ArchiveName(videoPath string) string {
	if videoPath == "" {
		return "labels.zip"
	}
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_labels.zip"
}

// Export builds the archive and hands it to the sink under name
func (e *Exporter) Export(ctx context.Context, in Input, sink Sink, name string) (*Result, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	start := time.Now()
	data, files, skipped, err := e.Build(in)
	if err != nil {
		metrics.RecordExport(sink.Name(), metrics.StatusError, time.Since(start).Seconds())
		return nil, err
	}

	location, err := sink.Put(ctx, name, data)
	if err != nil {
		metrics.RecordExport(sink.Name(), metrics.StatusError, time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to export annotations: %w", err)
	}
	metrics.RecordExport(sink.Name(), metrics.StatusSuccess, time.Since(start).Seconds())

	log.Printf("[INFO] Exported %d annotation(s) to %s", len(in.Annotations), location)
	return &Result{
		Location: location,
		Sink:     sink.Name(),
		Size:     len(data),
		Files:    files,
		Skipped:  skipped,
	}, nil
}
