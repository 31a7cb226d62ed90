package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/killallgit/labeler/internal/models"
)

// TimeLayout is the timestamp format used in every CSV column
const TimeLayout = "2006-01-02 15:04:05"

// Source is the SOURCE column value for human-made labels
const Source = "Expert"

// Header is the first row of every category CSV
var Header = []string{"START_TIME", "STOP_TIME", "PREDICTION", "SOURCE", "LABELSET", "VIDEO_START_TIME", "VIDEO_END_TIME"}

// categoryFile maps a category key to its archive entry and LABELSET name
type categoryFile struct {
	Category string
	File     string
	LabelSet string
}

var categoryFiles = []categoryFile{
	{models.CategoryPosture, "POSTURE.csv", "Posture"},
	{models.CategoryHighLevelBehavior, "HIGH LEVEL BEHAVIOR.csv", "High Level Behavior"},
	{models.CategoryPAType, "PA TYPE.csv", "PA Type"},
	{models.CategoryBehavioralParams, "Behavioral Parameters.csv", "Behavioral Parameters"},
	{models.CategoryExperimentalSituation, "Experimental situation.csv", "Experimental Situation"},
	{models.CategorySpecialNotes, "Special Notes.csv", "Special Notes"},
}

// anchors holds the two time origins of an export: the video's wall-clock
// time and midnight of the same day
type anchors struct {
	wall     time.Time
	midnight time.Time
}

func newAnchors(t time.Time) anchors {
	y, m, d := t.Date()
	return anchors{
		wall:     t,
		midnight: time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
	}
}

func offset(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// rows builds the CSV row of every category the label has a value for
func (a anchors) rows(ann *models.Annotation, label models.Label) map[string][]string {
	start, end := offset(ann.StartTime), offset(ann.EndTime)
	startStr := a.wall.Add(start).Format(TimeLayout)
	endStr := a.wall.Add(end).Format(TimeLayout)
	videoStartStr := a.midnight.Add(start).Format(TimeLayout)
	videoEndStr := a.midnight.Add(end).Format(TimeLayout)

	out := make(map[string][]string)
	for _, cf := range categoryFiles {
		values := label.LabeledValues(cf.Category)
		if len(values) == 0 {
			continue
		}
		out[cf.File] = []string{
			startStr, endStr,
			strings.Join(values, ", "), Source, cf.LabelSet,
			videoStartStr, videoEndStr,
		}
	}
	return out
}

// encodeCSV renders the header plus rows with CRLF line endings
func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
