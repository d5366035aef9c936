package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry holds the sessions of all connected clients.
type Registry struct {
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
}

// NewRegistry ...
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// AddSession ...
func (r *Registry) AddSession(id uuid.UUID, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = session
}

// GetSession ...
func (r *Registry) GetSession(id uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// GetSessionByUsername returns the session of the player with the username passed, ignoring case.
func (r *Registry) GetSessionByUsername(username string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, session := range r.sessions {
		if strings.EqualFold(session.client.Username(), username) {
			return session
		}
	}
	return nil
}

// RemoveSession ...
func (r *Registry) RemoveSession(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// GetSessions ...
func (r *Registry) GetSessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}
