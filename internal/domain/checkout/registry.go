// internal/domain/checkout/registry.go
package checkout

import (
	"sync"

	"github.com/google/uuid"

	"github.com/freshmeals/web/internal/domain/payment"
)

// Registry holds checkout sessions keyed by the opaque token carried in the
// visitor's cookie. Process-lifetime only.
type Registry struct {
	rules   FeeRules
	factory func(sessionID string) *payment.Coordinator

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a session registry. The factory builds one payment
// coordinator per session, on first entry to the payment step; the session
// token lets per-session collaborators (like the banner summary sink) bind
// to their owner.
func NewRegistry(rules FeeRules, coordinatorFactory func(sessionID string) *payment.Coordinator) *Registry {
	return &Registry{
		rules:    rules,
		factory:  coordinatorFactory,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for a token, if present
func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Create starts a fresh session under a new token
func (r *Registry) Create() *Session {
	token := uuid.New().String()
	session := NewSession(token, r.rules, r.factory)

	r.mu.Lock()
	r.sessions[token] = session
	r.mu.Unlock()

	return session
}
