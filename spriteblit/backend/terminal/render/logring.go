// Package render holds the cell conversion and log capture helpers for the
// terminal backend.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogRing is a thread-safe circular buffer of log entries. The terminal
// backend routes slog output here so log lines end up in a screen panel
// instead of corrupting the raw terminal.
type LogRing struct {
	mu      sync.RWMutex
	entries []Entry
	size    int
	index   int
	count   int
}

// NewLogRing creates a ring holding up to size entries.
func NewLogRing(size int) *LogRing {
	return &LogRing{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Add inserts an entry, evicting the oldest once full.
func (r *LogRing) Add(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.index] = entry
	r.index = (r.index + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Recent returns up to maxCount entries, newest first.
func (r *LogRing) Recent(maxCount int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	count := r.count
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}

	result := make([]Entry, count)
	for i := 0; i < count; i++ {
		entryIndex := (r.index - 1 - i + r.size) % r.size
		result[i] = r.entries[entryIndex]
	}

	return result
}

// Handler is a slog.Handler that captures records into a LogRing.
type Handler struct {
	ring  *LogRing
	level slog.Level
}

// NewHandler creates a handler that writes to the given ring.
func NewHandler(ring *LogRing, level slog.Level) *Handler {
	return &Handler{
		ring:  ring,
		level: level,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message
	record.Attrs(func(a slog.Attr) bool {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.ring.Add(Entry{
		Time:    record.Time,
		Level:   record.Level,
		Message: message,
	})
	return nil
}

// WithAttrs returns the handler unchanged; attributes are flattened into
// the message at Handle time.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup returns the handler unchanged.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

// FormatEntry renders an entry as a single display line.
func FormatEntry(entry Entry) string {
	levelStr := "???"
	switch entry.Level {
	case slog.LevelDebug:
		levelStr = "DBG"
	case slog.LevelInfo:
		levelStr = "INF"
	case slog.LevelWarn:
		levelStr = "WRN"
	case slog.LevelError:
		levelStr = "ERR"
	}

	return fmt.Sprintf("%s [%s] %s", entry.Time.Format("15:04:05"), levelStr, entry.Message)
}
