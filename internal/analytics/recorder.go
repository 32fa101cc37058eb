// Package analytics keeps an append-only log of timestamped interaction
// events for the current session and produces an on-demand summary report.
package analytics

import (
	"sync"
	"time"

	"github.com/lumenhome/lumen/internal/observe"
)

// Event is one recorded interaction. Events are never mutated or removed;
// the log order is insertion order.
type Event struct {
	Name    string
	Payload map[string]any
	Time    time.Time
	// Elapsed is how far into the session the event happened, measured
	// from Recorder creation.
	Elapsed time.Duration
}

// Report is a read-only aggregate over the event log, computed on demand.
type Report struct {
	TotalEvents     int
	SessionDuration time.Duration
	Events          []Event
}

// Recorder owns the session event log. It publishes {events} through the
// embedded state container after every append.
type Recorder struct {
	observe.Container

	mu      sync.Mutex
	started time.Time
	events  []Event
	now     func() time.Time
}

// New creates a Recorder; the session clock starts immediately.
func New() *Recorder {
	return newRecorder(time.Now)
}

// NewWithClock creates a Recorder with an injected time source, for tests.
func NewWithClock(now func() time.Time) *Recorder {
	return newRecorder(now)
}

func newRecorder(now func() time.Time) *Recorder {
	return &Recorder{
		started: now(),
		now:     now,
	}
}

// Record appends an event with the current timestamp and elapsed session
// duration. It never fails; a nil payload is recorded as-is.
func (r *Recorder) Record(name string, payload map[string]any) {
	t := r.now()

	r.mu.Lock()
	r.events = append(r.events, Event{
		Name:    name,
		Payload: payload,
		Time:    t,
		Elapsed: t.Sub(r.started),
	})
	events := make([]Event, len(r.events))
	copy(events, r.events)
	r.mu.Unlock()

	r.SetState(map[string]any{"events": events})
}

// Report returns the aggregate view. The events slice is a copy; the log
// itself stays append-only.
func (r *Recorder) Report() Report {
	t := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return Report{
		TotalEvents:     len(events),
		SessionDuration: t.Sub(r.started),
		Events:          events,
	}
}
