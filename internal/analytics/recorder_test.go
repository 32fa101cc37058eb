package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances by step on every call.
func tickingClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRecorder_AppendsInOrder(t *testing.T) {
	t.Parallel()

	r := New()
	r.Record("explore_click", nil)
	r.Record("add_to_cart", map[string]any{"item": "Lamp"})
	r.Record("view_cart", map[string]any{})

	rep := r.Report()
	require.Equal(t, 3, rep.TotalEvents)
	require.Equal(t, "explore_click", rep.Events[0].Name)
	require.Equal(t, "add_to_cart", rep.Events[1].Name)
	require.Equal(t, "view_cart", rep.Events[2].Name)
	require.Equal(t, "Lamp", rep.Events[1].Payload["item"])
}

func TestRecorder_ElapsedMeasuredFromSessionStart(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewWithClock(tickingClock(start, time.Second))

	r.Record("a", nil) // clock at start+2s, session started at start+1s
	r.Record("b", nil)

	rep := r.Report()
	require.Equal(t, time.Second, rep.Events[0].Elapsed)
	require.Equal(t, 2*time.Second, rep.Events[1].Elapsed)
	require.Equal(t, 3*time.Second, rep.SessionDuration)
}

func TestRecorder_ReportIsComputedNotCached(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewWithClock(tickingClock(start, time.Second))

	first := r.Report()
	second := r.Report()
	require.Greater(t, second.SessionDuration, first.SessionDuration)
}

func TestRecorder_ReportEventsAreACopy(t *testing.T) {
	t.Parallel()

	r := New()
	r.Record("a", nil)

	rep := r.Report()
	rep.Events[0].Name = "tampered"

	require.Equal(t, "a", r.Report().Events[0].Name)
}

func TestRecorder_PublishesEventLog(t *testing.T) {
	t.Parallel()

	r := New()

	var lengths []int
	r.Subscribe(func(state map[string]any) {
		events := state["events"].([]Event)
		lengths = append(lengths, len(events))
	})

	r.Record("a", nil)
	r.Record("b", nil)

	require.Equal(t, []int{1, 2}, lengths)
}
