package observe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainer_SetStateMerges(t *testing.T) {
	t.Parallel()

	c := new(Container)

	c.SetState(map[string]any{"a": 1, "b": "x"})
	c.SetState(map[string]any{"b": "y", "c": true})

	state := c.GetState()
	require.Equal(t, 1, state["a"])
	require.Equal(t, "y", state["b"])
	require.Equal(t, true, state["c"])
	require.Equal(t, 3, c.Len())
}

func TestContainer_GetStateIsACopy(t *testing.T) {
	t.Parallel()

	c := new(Container)
	c.SetState(map[string]any{"count": 1})

	state := c.GetState()
	state["count"] = 99
	state["injected"] = "nope"

	require.Equal(t, 1, c.Get("count"))
	require.Nil(t, c.Get("injected"))
}

func TestContainer_ObserversNotifiedInOrder(t *testing.T) {
	t.Parallel()

	c := new(Container)

	var order []string
	c.Subscribe(func(map[string]any) { order = append(order, "first") })
	c.Subscribe(func(map[string]any) { order = append(order, "second") })
	c.Subscribe(func(map[string]any) { order = append(order, "third") })

	c.SetState(map[string]any{"k": "v"})

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestContainer_ObserverReceivesFullSnapshot(t *testing.T) {
	t.Parallel()

	c := new(Container)
	c.SetState(map[string]any{"kept": "old"})

	var seen map[string]any
	c.Subscribe(func(state map[string]any) { seen = state })

	c.SetState(map[string]any{"added": "new"})

	require.Equal(t, "old", seen["kept"])
	require.Equal(t, "new", seen["added"])

	// Mutating the delivered snapshot must not leak back.
	seen["kept"] = "tampered"
	require.Equal(t, "old", c.Get("kept"))
}

func TestContainer_Unsubscribe(t *testing.T) {
	t.Parallel()

	c := new(Container)

	var calls int
	cancel := c.Subscribe(func(map[string]any) { calls++ })

	c.SetState(map[string]any{"n": 1})
	require.Equal(t, 1, calls)

	cancel()
	cancel() // idempotent

	c.SetState(map[string]any{"n": 2})
	require.Equal(t, 1, calls)
}

func TestContainer_ObserverMayReadBack(t *testing.T) {
	t.Parallel()

	c := new(Container)

	var got any
	c.Subscribe(func(map[string]any) { got = c.Get("k") })

	c.SetState(map[string]any{"k": 42})
	require.Equal(t, 42, got)
}

func TestContainer_ConcurrentSetState(t *testing.T) {
	t.Parallel()

	c := new(Container)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.SetState(map[string]any{"shared": n})
		}(i)
	}
	wg.Wait()

	require.NotNil(t, c.Get("shared"))
}
