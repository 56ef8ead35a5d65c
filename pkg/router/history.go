package router

import "sync"

// History is the browser history the router keeps in step with the mounted
// view. States are path strings.
type History interface {
	// State returns the state of the current entry, and false when the
	// current entry carries no state.
	State() (path string, ok bool)

	// PushState adds an entry for path and makes it current.
	PushState(path string) error

	// Subscribe registers fn to be called with the entry state whenever the
	// user moves through history (back/forward). It returns a function that
	// removes the subscription.
	Subscribe(fn func(path string)) (unsubscribe func())
}

// MemoryHistory is an in-memory History with a cursor, behaving like a
// browser's session history: pushing drops forward entries, and Back/Forward
// move the cursor and notify subscribers with the new entry's state.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[int]func(string)
	nextID    int
}

// NewMemoryHistory creates a history holding the initial entries, the last
// one current. With none, State reports no state, like a freshly loaded page.
func NewMemoryHistory(initial ...string) *MemoryHistory {
	h := &MemoryHistory{
		index:     -1,
		listeners: make(map[int]func(string)),
	}
	for _, p := range initial {
		h.entries = append(h.entries, p)
		h.index++
	}
	return h
}

// State implements History.
func (h *MemoryHistory) State() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// PushState implements History.
func (h *MemoryHistory) PushState(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
	return nil
}

// Subscribe implements History.
func (h *MemoryHistory) Subscribe(fn func(path string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// Back moves one entry back. It returns false at the first entry.
func (h *MemoryHistory) Back() bool { return h.Go(-1) }

// Forward moves one entry forward. It returns false at the last entry.
func (h *MemoryHistory) Forward() bool { return h.Go(1) }

// Go moves delta entries through history and notifies subscribers. It returns
// false, without moving, when the target is out of range.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	state := h.entries[target]
	listeners := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return true
}

// Entries returns a copy of all entries.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the cursor position, or -1 when there are no entries.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}
