package testutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NopLogger returns a logger that discards all output
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LogRecorder collects JSON log lines written by the logger it hands out
type LogRecorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewLogRecorder returns a recorder and a debug-level logger writing to it
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{}
	return rec, slog.New(slog.NewJSONHandler(rec, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (r *LogRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Entries decodes every recorded line, failing t on malformed output
func (r *LogRecorder) Entries(t testing.TB) []map[string]any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(r.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("malformed log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Find returns the first entry with the given message, or nil
func (r *LogRecorder) Find(t testing.TB, msg string) map[string]any {
	t.Helper()
	for _, entry := range r.Entries(t) {
		if entry["msg"] == msg {
			return entry
		}
	}
	return nil
}
