package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is an slog.Handler that buffers records for assertions.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
	t       *testing.T
}

// NewCaptureLogger returns a logger whose records can be inspected after
// the code under test runs. Records are also echoed to the test log.
func NewCaptureLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{t: t}
	return slog.New(h), h
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler; every level is captured.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

// WithAttrs implements slog.Handler. Attrs are dropped: assertions in
// these tests target messages, not inherited attributes.
func (h *CaptureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(_ string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// HasMessage reports whether any record carries the given message.
func (h *CaptureHandler) HasMessage(msg string) bool {
	for _, r := range h.Records() {
		if r.Message == msg {
			return true
		}
	}
	return false
}
