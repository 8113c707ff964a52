// internal/domain/order/memory.go
package order

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps orders in process memory. Concurrent status updates
// on the same order are last-write-wins; acceptable at this traffic level.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
	ids    []string
}

// NewMemoryRepository creates an empty in-memory order repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]*Order),
	}
}

// Add stores a new order, generating an id if not already set
func (r *MemoryRepository) Add(o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	r.ids = append(r.ids, o.ID)
	return nil
}

// FindByID returns a copy of the order with the given id
func (r *MemoryRepository) FindByID(id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

// UpdateStatus sets the status of an existing order
func (r *MemoryRepository) UpdateStatus(id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

// UpdateAmount sets the authorized amount of an existing order; used when a
// payment session is refreshed for a changed cart total
func (r *MemoryRepository) UpdateAmount(id string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Amount = amount
	return nil
}

// List returns copies of all orders in insertion order
func (r *MemoryRepository) List() []*Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Order, 0, len(r.ids))
	for _, id := range r.ids {
		copied := *r.orders[id]
		result = append(result, &copied)
	}
	return result
}
