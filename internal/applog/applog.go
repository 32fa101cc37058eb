// Package applog provides structured logging for the storefront. The
// handler keeps a bounded in-memory buffer of recent entries so the debug
// overlay can show them, and optionally tees records to a secondary
// destination such as a log file.
package applog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time         `json:"time"`
	Level   slog.Level        `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// buffer is the entry store shared by a Handler and its WithAttrs clones.
type buffer struct {
	mu      sync.RWMutex
	entries []Entry
	maxSize int
}

func (b *buffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.maxSize {
		b.entries = b.entries[1:]
	}
}

// Handler implements slog.Handler with a bounded in-memory entry buffer.
type Handler struct {
	buf   *buffer
	level slog.Level
	next  slog.Handler
	attrs []slog.Attr
}

// Option configures a Handler.
type Option func(*Handler)

// WithLevel sets the minimum level recorded.
func WithLevel(level slog.Level) Option {
	return func(h *Handler) { h.level = level }
}

// WithNext tees every record to another handler (e.g. a file handler) after
// capturing it.
func WithNext(next slog.Handler) Option {
	return func(h *Handler) { h.next = next }
}

// NewHandler creates a Handler retaining at most maxEntries records.
func NewHandler(maxEntries int, opts ...Option) *Handler {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	h := &Handler{
		buf: &buffer{
			entries: make([]Entry, 0, maxEntries),
			maxSize: maxEntries,
		},
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// New returns a slog.Logger backed by a fresh Handler, plus the handler for
// entry retrieval.
func New(maxEntries int, opts ...Option) (*slog.Logger, *Handler) {
	h := NewHandler(maxEntries, opts...)
	return slog.New(h), h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	attrs := make(map[string]string)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.String()
		return true
	})
	if len(attrs) == 0 {
		attrs = nil
	}

	h.buf.add(Entry{
		Time:    record.Time,
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})

	if h.next != nil {
		return h.next.Handle(ctx, record)
	}
	return nil
}

// WithAttrs implements slog.Handler. The returned handler shares the entry
// buffer with the receiver.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup implements slog.Handler. Groups are flattened; the group name
// is dropped, matching how the debug overlay displays attributes.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// Recent returns the most recent count entries, oldest first. A count <= 0
// or larger than the buffer returns everything retained.
func (h *Handler) Recent(count int) []Entry {
	h.buf.mu.RLock()
	defer h.buf.mu.RUnlock()
	if count <= 0 || count > len(h.buf.entries) {
		count = len(h.buf.entries)
	}
	out := make([]Entry, count)
	copy(out, h.buf.entries[len(h.buf.entries)-count:])
	return out
}
