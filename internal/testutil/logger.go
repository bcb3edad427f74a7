// Package testutil provides logging helpers for tests.
package testutil

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Recorder is a slog.Handler that keeps the messages
// of all handled records for assertions
// and forwards them to the test log.
type Recorder struct {
	mu       sync.Mutex
	messages []string
	next     slog.Handler
}

// NewRecordingLogger returns a debug level logger
// and the Recorder receiving its records.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Recorder) {
	t.Helper()
	r := &Recorder{next: NewTestLogger(t).Handler()}
	return slog.New(r), r
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *Recorder) Handle(ctx context.Context, rec slog.Record) error {
	r.mu.Lock()
	r.messages = append(r.messages, rec.Message)
	r.mu.Unlock()
	return r.next.Handle(ctx, rec)
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recorderWith{Recorder: r, next: r.next.WithAttrs(attrs)}
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	return &recorderWith{Recorder: r, next: r.next.WithGroup(name)}
}

// Messages returns the messages of all records handled so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.messages)
}

// Count returns how often msg was logged.
func (r *Recorder) Count(msg string) int {
	n := 0
	for _, m := range r.Messages() {
		if m == msg {
			n++
		}
	}
	return n
}

// recorderWith records into the shared Recorder
// while forwarding to a derived handler.
type recorderWith struct {
	*Recorder
	next slog.Handler
}

func (r *recorderWith) Handle(ctx context.Context, rec slog.Record) error {
	r.mu.Lock()
	r.messages = append(r.messages, rec.Message)
	r.mu.Unlock()
	return r.next.Handle(ctx, rec)
}

func (r *recorderWith) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recorderWith{Recorder: r.Recorder, next: r.next.WithAttrs(attrs)}
}

func (r *recorderWith) WithGroup(name string) slog.Handler {
	return &recorderWith{Recorder: r.Recorder, next: r.next.WithGroup(name)}
}
