// internal/pkg/auth/session.go
package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore holds opaque admin session tokens server-side. Tokens live
// until logout or process exit; the cookie max-age is only a hint.
type SessionStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		tokens: make(map[string]struct{}),
	}
}

// Create issues a new opaque session token
func (s *SessionStore) Create() string {
	token := uuid.New().String()

	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	return token
}

// Valid reports whether a token belongs to an active session
func (s *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// Destroy removes a token; unknown tokens are a no-op
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
