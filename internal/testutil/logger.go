// Package testutil provides logging helpers for tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecorder is a debug-level logger that mirrors every line to t.Log
// and keeps a copy for assertions.
type LogRecorder struct {
	*slog.Logger

	t   testing.TB
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewTestLogger returns a LogRecorder for t. Lines only show up in test
// output on failure or with -v.
func NewTestLogger(t testing.TB) *LogRecorder {
	t.Helper()
	r := &LogRecorder{t: t}
	r.Logger = slog.New(slog.NewTextHandler(r, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return r
}

func (r *LogRecorder) Write(p []byte) (int, error) {
	r.t.Helper()
	r.mu.Lock()
	r.buf.Write(p)
	r.mu.Unlock()
	r.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// Lines returns the recorded log lines whose message is msg.
func (r *LogRecorder) Lines(msg string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var lines []string
	want := "msg=" + quoteIfNeeded(msg)
	for _, line := range strings.Split(strings.TrimSpace(r.buf.String()), "\n") {
		if strings.Contains(line, want) {
			lines = append(lines, line)
		}
	}
	return lines
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " =\"") {
		return `"` + s + `"`
	}
	return s
}
