// Package notify maintains the ephemeral toast notifications shown on the
// page: a live list of records with auto-expiry, severity levels, and a
// pluggable renderer for the host surface.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenhome/lumen/internal/observe"
)

// Severity categorizes a notification; it controls icon and color on the
// rendering side.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration is how long a toast stays visible when the caller does not
// ask for a specific duration.
const DefaultDuration = 3 * time.Second

// Record is one live notification. Lifecycle:
// created → visible → (auto-expired | dismissed) → removed.
// Removal is terminal; ids are never reused.
type Record struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Renderer is the host surface the center delegates visuals to. Show is
// called once per record when it becomes visible; Remove once when the
// record leaves the live list, whether by expiry or dismissal.
type Renderer interface {
	Show(rec Record)
	Remove(id string)
}

// Scheduler defers a callback and returns a cancel function. The cancel is
// best-effort: a callback that already fired (or fires concurrently with
// cancel) must still be safe, so Center never relies on it for correctness.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// WallClock schedules against the real clock via time.AfterFunc.
type WallClock struct{}

func (WallClock) After(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Center owns the live notification list. It publishes {notifications}
// through the embedded state container on every change.
type Center struct {
	observe.Container

	renderer  Renderer
	scheduler Scheduler

	mu      sync.Mutex
	live    []Record
	cancels map[string]func()
	now     func() time.Time
	newID   func() string
}

// Option configures a Center.
type Option func(*Center)

// WithScheduler replaces the wall-clock scheduler, used by tests to fire
// expirations deterministically.
func WithScheduler(s Scheduler) Option {
	return func(c *Center) { c.scheduler = s }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// New creates a Center delegating visuals to renderer. A nil renderer is
// allowed; rendering is then silently skipped.
func New(renderer Renderer, opts ...Option) *Center {
	c := &Center{
		renderer:  renderer,
		scheduler: WallClock{},
		cancels:   make(map[string]func()),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show creates a record, adds it to the live list, publishes, asks the
// renderer to display it, and schedules automatic removal after duration
// (DefaultDuration when duration <= 0). Returns the record id.
func (c *Center) Show(message string, severity Severity, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}

	rec := Record{
		ID:        c.newID(),
		Message:   message,
		Severity:  severity,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	c.live = append(c.live, rec)
	c.mu.Unlock()

	c.publish()
	if c.renderer != nil {
		c.renderer.Show(rec)
	}

	id := rec.ID
	cancel := c.scheduler.After(duration, func() {
		// The record may have been dismissed already; remove checks
		// before acting, so a stale timer is a harmless no-op.
		c.remove(id)
	})

	c.mu.Lock()
	// Dismiss may have raced the scheduling; only retain the cancel for a
	// record that is still live.
	if c.indexLocked(id) >= 0 {
		c.cancels[id] = cancel
	} else {
		cancel()
	}
	c.mu.Unlock()

	return id
}

// Dismiss removes the record immediately, regardless of remaining duration.
// Dismissing an unknown or already-removed id is a no-op.
func (c *Center) Dismiss(id string) {
	c.remove(id)
}

// Success shows a success toast with the default duration.
func (c *Center) Success(message string) string {
	return c.Show(message, SeveritySuccess, 0)
}

// Error shows an error toast with the default duration.
func (c *Center) Error(message string) string {
	return c.Show(message, SeverityError, 0)
}

// Warning shows a warning toast with the default duration.
func (c *Center) Warning(message string) string {
	return c.Show(message, SeverityWarning, 0)
}

// Info shows an info toast with the default duration.
func (c *Center) Info(message string) string {
	return c.Show(message, SeverityInfo, 0)
}

// Live returns a copy of the live records, oldest first.
func (c *Center) Live() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.live))
	copy(out, c.live)
	return out
}

// remove takes the record out of the live list if it is still there. Both
// the expiry timer and Dismiss funnel through here, so whichever runs
// second finds nothing to do.
func (c *Center) remove(id string) {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.live = append(c.live[:i], c.live[i+1:]...)
	cancel := c.cancels[id]
	delete(c.cancels, id)
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.publish()
	if c.renderer != nil {
		c.renderer.Remove(id)
	}
}

// indexLocked returns the live index of id, or -1.
// It ASSUMES that c.mu is already held by the caller.
func (c *Center) indexLocked(id string) int {
	for i := range c.live {
		if c.live[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Center) publish() {
	c.SetState(map[string]any{"notifications": c.Live()})
}
