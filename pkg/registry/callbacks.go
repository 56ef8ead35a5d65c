package registry

import (
	"errors"
	"sync"

	verrors "github.com/verbosity-dev/verbosity/internal/errors"
)

// ErrNoCallbackGroup is returned when unregistering from a group that was
// never created.
var ErrNoCallbackGroup = errors.New("registry: callback group does not exist")

// CallbackID identifies a callback registered with a group. Go func values
// cannot be compared, so unregistration goes through the ID.
type CallbackID uint64

type groupEntry struct {
	id CallbackID
	fn any
}

// Callbacks stores single callbacks and callback groups.
type Callbacks struct {
	mu        sync.RWMutex
	callbacks map[string]any
	groups    map[string][]groupEntry
	nextID    CallbackID
}

// NewCallbacks creates an empty Callbacks.
func NewCallbacks() *Callbacks {
	return &Callbacks{
		callbacks: make(map[string]any),
		groups:    make(map[string][]groupEntry),
	}
}

// RegisterCallback stores fn under key, replacing any previous callback.
func (c *Callbacks) RegisterCallback(key string, fn any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks[key] = fn
}

// Callback returns the callback registered under key.
func (c *Callbacks) Callback(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.callbacks[key]
	return fn, ok
}

// CallbackAs returns the callback registered under key if it has type T.
func CallbackAs[T any](c *Callbacks, key string) (T, bool) {
	fn, _ := c.Callback(key)
	v, ok := fn.(T)
	return v, ok
}

// RegisterWithCallbackGroup appends fn to group, creating the group if
// needed, and returns the ID to unregister it with.
func (c *Callbacks) RegisterWithCallbackGroup(group string, fn any) CallbackID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.groups[group] = append(c.groups[group], groupEntry{id: c.nextID, fn: fn})
	return c.nextID
}

// UnregisterWithCallbackGroup removes the callback id from group. It fails
// if group was never created; an id not in the group is ignored.
func (c *Callbacks) UnregisterWithCallbackGroup(group string, id CallbackID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.groups[group]
	if !ok {
		return verrors.New("E200").
			WithDetailf("callback group %q does not exist", group).
			Wrap(ErrNoCallbackGroup)
	}

	kept := make([]groupEntry, 0, len(entries))
	for _, e := range entries {
		if e.id != id {
			kept = append(kept, e)
		}
	}
	// The group survives becoming empty.
	c.groups[group] = kept
	return nil
}

// CallbackGroup returns the callbacks of group in registration order. An
// unknown group yields an empty, non-nil slice.
func (c *Callbacks) CallbackGroup(group string) []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := c.groups[group]
	fns := make([]any, len(entries))
	for i, e := range entries {
		fns[i] = e.fn
	}
	return fns
}

// CallbackGroupAs returns the callbacks of group that have type T.
func CallbackGroupAs[T any](c *Callbacks, group string) []T {
	all := c.CallbackGroup(group)
	fns := make([]T, 0, len(all))
	for _, fn := range all {
		if v, ok := fn.(T); ok {
			fns = append(fns, v)
		}
	}
	return fns
}
