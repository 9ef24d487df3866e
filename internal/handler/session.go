package handler

import (
	"sync"

	"ai-listener/backend/internal/engine"
)

// maxStoredTurns caps the per-session history. The engine only forwards
// the most recent turns anyway; this just bounds memory.
const maxStoredTurns = 40

// SessionStore keeps recent conversation turns per session in memory.
// Sessions are ephemeral: a restart clears them, which is acceptable for
// context that only shapes tone.
type SessionStore struct {
	mu    sync.Mutex
	turns map[string][]engine.Turn
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{turns: make(map[string][]engine.Turn)}
}

// History returns a copy of the stored turns for a session.
func (s *SessionStore) History(sessionID string) []engine.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.turns[sessionID]
	history := make([]engine.Turn, len(stored))
	copy(history, stored)
	return history
}

// Append adds turns to a session, dropping the oldest past the cap.
func (s *SessionStore) Append(sessionID string, turns ...engine.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(s.turns[sessionID], turns...)
	if len(updated) > maxStoredTurns {
		updated = updated[len(updated)-maxStoredTurns:]
	}
	s.turns[sessionID] = updated
}
