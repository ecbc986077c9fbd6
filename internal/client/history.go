package client

import "sync"

// history keeps the most recent non-room frames for replay after joining a
// room. It is a convenience echo with a hard capacity, not a durability
// mechanism; the oldest entry is evicted when the limit is reached.
type history struct {
	mu    sync.Mutex
	limit int
	items []string
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, line)
	if len(h.items) > h.limit {
		h.items = h.items[len(h.items)-h.limit:]
	}
}

func (h *history) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}
