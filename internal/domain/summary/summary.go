// internal/domain/summary/summary.go
package summary

import (
	"sync"
	"time"
)

// Summary is a compact record of the most recent order attempt, displayed
// by the order-page banner after the processor redirects back.
type Summary struct {
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	ItemsCount     int       `json:"items_count"`
	DeliveryWindow string    `json:"delivery_window"`
	CreatedAt      time.Time `json:"created_at"`
}

// Sink receives best-effort summary writes from the payment flow. A failing
// sink must never affect the main flow; callers log and move on.
type Sink interface {
	Record(s Summary) error
}

// MemoryStore keeps the latest summary per checkout session in process
// memory. Summaries are private to the session that produced them; readers
// must present the matching token.
type MemoryStore struct {
	mu   sync.RWMutex
	last map[string]Summary
}

// NewMemoryStore creates an empty summary store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		last: make(map[string]Summary),
	}
}

// ForSession returns a Sink whose writes are scoped to one checkout
// session's token
func (m *MemoryStore) ForSession(token string) Sink {
	return sessionSink{store: m, token: token}
}

// Last returns the most recent summary recorded under a session token
func (m *MemoryStore) Last(token string) (Summary, bool) {
	if token == "" {
		return Summary{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.last[token]
	return s, ok
}

func (m *MemoryStore) record(token string, s Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = time.Now().UTC()
	m.last[token] = s
	return nil
}

type sessionSink struct {
	store *MemoryStore
	token string
}

func (s sessionSink) Record(sum Summary) error {
	return s.store.record(s.token, sum)
}
