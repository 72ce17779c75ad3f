package web

import "sync"

// RefreshHub fans a "menu changed, re-fetch" signal out to connected
// browsers. The controller's reload hook notifies it; the SSE handler
// subscribes per connection.
type RefreshHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewRefreshHub() *RefreshHub {
	return &RefreshHub{subs: make(map[chan struct{}]struct{})}
}

// Notify signals every subscriber. Slow subscribers are skipped; a missed
// signal only delays the next browser refresh until the following one.
func (h *RefreshHub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a listener; the returned cancel must be called when
// the connection ends.
func (h *RefreshHub) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Len returns the number of connected listeners.
func (h *RefreshHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
