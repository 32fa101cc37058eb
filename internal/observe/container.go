// Package observe provides the shared state container used by the cart,
// notification, and analytics components: a key-value snapshot store with
// synchronous observer fan-out on every update.
package observe

import "sync"

// Observer receives a copy of the full state snapshot after each update.
type Observer func(state map[string]any)

// Container holds a mutable key-value snapshot and a list of observers.
// All access is mutex-guarded: timer callbacks and the UI goroutine may
// both touch the same container.
//
// Usage: create with new(Container). The internal map is lazily initialized
// on the first write.
type Container struct {
	mu        sync.Mutex
	state     map[string]any
	observers []Observer
}

// SetState shallow-merges partial into the current snapshot (keys in partial
// overwrite, other keys are preserved) and then synchronously invokes every
// observer, in subscription order, with a copy of the new full snapshot.
func (c *Container) SetState(partial map[string]any) {
	c.mu.Lock()
	if c.state == nil {
		c.state = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		c.state[k] = v
	}
	snapshot := c.snapshotLocked()
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	// Fan-out happens outside the lock so an observer may call back into
	// the container without deadlocking. Each observer gets its own copy.
	for _, fn := range observers {
		if fn == nil {
			continue // unsubscribed slot
		}
		fn(cloneState(snapshot))
	}
}

// GetState returns a shallow copy of the current snapshot. Callers cannot
// mutate the container's internal state through the returned map.
func (c *Container) GetState() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Get retrieves a single value from the snapshot, or nil if absent.
func (c *Container) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	return c.state[key]
}

// Len returns the number of keys in the snapshot.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state)
}

// Subscribe registers an observer for the lifetime of the container and
// returns a cancel function that removes it again. Observers are notified
// in subscription order.
func (c *Container) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
	idx := len(c.observers) - 1
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.observers[idx] = nil
		})
	}
}

// snapshotLocked returns a shallow copy of the state map.
// It ASSUMES that c.mu is already held by the caller.
func (c *Container) snapshotLocked() map[string]any {
	out := make(map[string]any, len(c.state))
	for k, v := range c.state {
		out[k] = v
	}
	return out
}

func cloneState(state map[string]any) map[string]any {
	out := make(map[string]any, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}
