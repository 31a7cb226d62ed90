// Package logging routes the standard logger through a level filter. Log
// lines carry their level as a bracketed tag, e.g. "[WARN] disk full".
package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

var tagPattern = regexp.MustCompile(`\[(DEBUG|INFO|WARN|ERROR)\] ?`)

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func tagLevel(tag string) slog.Level {
	switch tag {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Writer filters tagged log lines below a minimum level. Untagged lines are
// treated as info. In JSON mode every line is re-emitted as a JSON object.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	min  slog.Level
	json *slog.Logger
}

// NewWriter creates a filtering writer
func NewWriter(out io.Writer, level string, jsonLogs bool) *Writer {
	w := &Writer{out: out, min: ParseLevel(level)}
	if jsonLogs {
		w.json = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: w.min}))
	}
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	line := string(p)
	level := slog.LevelInfo
	msg := line
	if loc := tagPattern.FindStringSubmatchIndex(line); loc != nil {
		level = tagLevel(line[loc[2]:loc[3]])
		msg = line[:loc[0]] + line[loc[1]:]
	}
	if level < w.min {
		return len(p), nil
	}

	if w.json != nil {
		w.json.Log(context.Background(), level, strings.TrimSpace(msg))
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Setup installs the filter on the standard logger
func Setup(out io.Writer, level string, jsonLogs bool) {
	if jsonLogs {
		log.SetFlags(0)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	log.SetOutput(NewWriter(out, level, jsonLogs))
}
