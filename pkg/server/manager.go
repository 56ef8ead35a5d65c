package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// SessionManager tracks open sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64

	metrics *Metrics
	logger  *slog.Logger
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager(metrics *Metrics, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		metrics:  metrics,
		logger:   logger,
	}
}

// Add starts tracking s and stops when it closes.
func (m *SessionManager) Add(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.totalCreated.Add(1)
	m.metrics.opened()
	s.onClose = m.remove
	m.logger.Debug("session added", "session_id", s.ID)
}

func (m *SessionManager) remove(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	if ok {
		m.totalClosed.Add(1)
		m.metrics.closed()
	}
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of open sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every open session.
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Close()
	}
}

// ManagerStats is a snapshot of manager counters.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
}

// Stats returns a snapshot of the manager's counters.
func (m *SessionManager) Stats() ManagerStats {
	return ManagerStats{
		Active:       m.Count(),
		TotalCreated: m.totalCreated.Load(),
		TotalClosed:  m.totalClosed.Load(),
	}
}
