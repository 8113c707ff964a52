// internal/domain/order/repository.go
package order

import "errors"

// ErrNotFound is returned when no order exists for a given id
var ErrNotFound = errors.New("order not found")

// Repository abstracts order storage so the in-memory store can later be
// swapped for a real datastore without touching callers.
type Repository interface {
	Add(o *Order) error
	FindByID(id string) (*Order, error)
	UpdateStatus(id string, status Status) error
	UpdateAmount(id string, amount int64) error
	List() []*Order
}
