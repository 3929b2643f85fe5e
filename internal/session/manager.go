package session

import "sync"

// SeedFunc produces the snapshot a fresh session is populated with,
// scoped to the logging-in user's role.
type SeedFunc func(role string) Data

// Manager tracks one session per authenticated user. Login starts (or
// restarts) a session, logout tears it down.
type Manager struct {
	mu       sync.Mutex
	seed     SeedFunc
	sessions map[int64]*Session
}

// NewManager returns a manager that populates new sessions with seed.
func NewManager(seed SeedFunc) *Manager {
	return &Manager{
		seed:     seed,
		sessions: make(map[int64]*Session),
	}
}

// Start creates the session for a user, replacing any existing one.
func (m *Manager) Start(userID int64, role string) *Session {
	s := New()
	s.Load(m.seed(role))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
	return s
}

// Get returns the user's session, or nil if none is active.
func (m *Manager) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// End clears and discards the user's session. Safe to call when no
// session is active.
func (m *Manager) End(userID int64) {
	m.mu.Lock()
	s := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if s != nil {
		s.Clear()
	}
}
