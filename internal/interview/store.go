package interview

import "sync"

// Store holds the live sessions for one process. It is created at startup and
// passed to the Service; there is no ambient global table.
//
// The mutex protects the map itself, not the Sessions it holds. Respond reads
// a session, calls the provider, and appends — that read-call-append window is
// deliberately not serialized per session id, so two concurrent Respond calls
// on the same id can interleave their appends in either completion order. A
// single client is expected to keep at most one respond in flight per session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Remove deletes the session and returns it.
func (st *Store) Remove(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	return s, ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
