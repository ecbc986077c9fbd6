package ws

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"chatrelaygo/internal/metrics"
)

// Hub is the process-wide room registry. A single RWMutex serializes every
// membership mutation; broadcast enqueues are non-blocking, so the lock is
// never held across a slow consumer.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
	mtr   *metrics.Relay
}

func NewHub(mtr *metrics.Relay) *Hub {
	return &Hub{rooms: map[string]*room{}, mtr: mtr}
}

// EnsureRoom creates an empty room if absent. Idempotent.
func (h *Hub) EnsureRoom(name string) {
	h.mu.Lock()
	h.ensureLocked(name)
	h.mu.Unlock()
}

func (h *Hub) ensureLocked(name string) *room {
	r, ok := h.rooms[name]
	if !ok {
		r = newRoom(name)
		h.rooms[name] = r
		h.mtr.ActiveRooms.Inc()
	}
	return r
}

// Join adds the session to the named room, creating the room if needed.
// A session belongs to at most one room: joining a new room implicitly
// leaves the previous one. Re-joining the current room is a no-op.
func (h *Hub) Join(name string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev := s.CurrentRoom(); prev != "" && prev != name {
		h.leaveLocked(prev, s.id)
	}
	h.ensureLocked(name).add(s)
	// Inside the hub lock so membership and the session's room field move
	// together even under concurrent callers.
	s.setRoom(name)
}

// Leave removes the session from the named room. No-op when the room or the
// membership is absent; the room entry is deleted when its last member
// leaves.
func (h *Hub) Leave(name string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(name, s.id)
	if s.CurrentRoom() == name {
		s.setRoom("")
	}
}

func (h *Hub) leaveLocked(name, id string) bool {
	r, ok := h.rooms[name]
	if !ok {
		return false
	}
	if !r.remove(id) {
		return false
	}
	if len(r.members) == 0 {
		delete(h.rooms, name)
		h.mtr.ActiveRooms.Dec()
	}
	return true
}

// Broadcast delivers payload to every current member of the named room,
// including the sender if it is a member. A full member queue drops the
// payload for that member only; the failure never aborts delivery to the
// rest.
func (h *Hub) Broadcast(name string, payload []byte) {
	h.mu.RLock()
	var targets []*Session
	if r, ok := h.rooms[name]; ok {
		targets = r.snapshot()
	}
	h.mu.RUnlock()

	for _, member := range targets {
		if member.enqueue(payload) {
			h.mtr.Delivered.Inc()
			continue
		}
		h.mtr.Dropped.Inc()
		zap.L().Warn("hub.drop",
			zap.String("room", name),
			zap.String("session", member.id))
	}
}

// RoomInfo is a point-in-time view of one live room.
type RoomInfo struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// Rooms returns a snapshot of all live rooms, sorted by name.
func (h *Hub) Rooms() []RoomInfo {
	h.mu.RLock()
	out := make([]RoomInfo, 0, len(h.rooms))
	for name, r := range h.rooms {
		out = append(out, RoomInfo{Name: name, Members: len(r.members)})
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MemberCount reports the member count of one room; ok is false when the
// room does not exist.
func (h *Hub) MemberCount(name string) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.rooms[name]
	if !ok {
		return 0, false
	}
	return len(r.members), true
}
