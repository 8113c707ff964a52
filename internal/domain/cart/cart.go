// internal/domain/cart/cart.go
package cart

import "sync"

// Line represents one cart entry in a snapshot
type Line struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Cart tracks selected item quantities. Quantity zero means "not in cart".
// Unknown item ids are stored without complaint; they simply price at zero
// and have no visual representation.
type Cart struct {
	mu         sync.Mutex
	quantities map[string]int
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		quantities: make(map[string]int),
	}
}

// SetQuantity stores a quantity for an item, clamping negatives to zero
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities[itemID] = quantity
}

// Increment adds one to an item's quantity
func (c *Cart) Increment(itemID string) {
	c.SetQuantity(itemID, c.Quantity(itemID)+1)
}

// Decrement removes one from an item's quantity, stopping at zero
func (c *Cart) Decrement(itemID string) {
	c.SetQuantity(itemID, c.Quantity(itemID)-1)
}

// Quantity returns the current quantity for an item
func (c *Cart) Quantity(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[itemID]
}

// TotalItemCount sums all quantities in the cart
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// Lines returns a snapshot of all non-zero cart entries
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.quantities))
	for itemID, qty := range c.quantities {
		if qty > 0 {
			lines = append(lines, Line{ItemID: itemID, Quantity: qty})
		}
	}
	return lines
}
