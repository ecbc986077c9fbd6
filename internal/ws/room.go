package ws

// room is one named broadcast group. Members are keyed by session ID so
// removal never relies on pointer identity. All access is serialized by the
// hub's lock.
type room struct {
	name    string
	members map[string]*Session
}

func newRoom(name string) *room {
	return &room{name: name, members: map[string]*Session{}}
}

// add registers the session, returning false when it is already a member.
func (r *room) add(s *Session) bool {
	if _, ok := r.members[s.id]; ok {
		return false
	}
	r.members[s.id] = s
	return true
}

func (r *room) remove(id string) bool {
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

// snapshot copies the current member set so delivery happens outside the
// hub lock.
func (r *room) snapshot() []*Session {
	out := make([]*Session, 0, len(r.members))
	for _, s := range r.members {
		out = append(out, s)
	}
	return out
}
