package net

import "sync"

// SessionStore tracks live sessions. Sessions run on per-connection
// goroutines, so every access serializes on the store mutex. The counts
// returned by Add and Remove are the authoritative player counts: the
// greeting's "Players: N" comes straight from Add's return value.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint64]*Session)}
}

// Add registers s and returns the player count including s.
func (ss *SessionStore) Add(s *Session) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[s.ID] = s
	return len(ss.sessions)
}

// Remove drops id and returns the remaining player count. Removing an
// id twice leaves the count unchanged.
func (ss *SessionStore) Remove(id uint64) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
	return len(ss.sessions)
}

// Count returns the number of live sessions.
func (ss *SessionStore) Count() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// CloseAll force-closes every live connection. Each session's goroutine
// then winds down on its own and releases its store entry.
func (ss *SessionStore) CloseAll() {
	ss.mu.Lock()
	sessions := make([]*Session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		sessions = append(sessions, s)
	}
	ss.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
