package session

import "sync"

// Store keeps at most one live workflow session per student. Sessions are
// transient; a server restart discards them by design of the workflow (the
// student simply starts a new conversation).
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for the user, creating an idle one if absent.
func (st *Store) Get(userID, userName string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.sessions[userID]; ok {
		return existing
	}

	created := New(userID, userName)
	st.sessions[userID] = created
	return created
}

// Peek returns the session for the user without creating one.
func (st *Store) Peek(userID string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	existing, ok := st.sessions[userID]
	return existing, ok
}

// Remove discards the session for the user, if any.
func (st *Store) Remove(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, userID)
}
