// internal/domain/order/entity.go
package order

import "time"

// Status represents the order status
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus returns the Status for a raw string and whether it is one of
// the allowed values. Unknown values are ignored by callers, by design.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// Item is an order line snapshot taken at intent-creation time
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"qty"`
	Price     int64  `json:"price"`
	LineTotal int64  `json:"line_total"`
}

// Delivery is the delivery-details snapshot attached to an order
type Delivery struct {
	Name       string `json:"name"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Zip        string `json:"zip"`
	Phone      string `json:"phone"`
	Window     string `json:"window"`
	Preference string `json:"preference"`
}

// Order represents a received order. Amounts are in cents. Orders are never
// deleted and live only for the process lifetime.
type Order struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Items     []Item    `json:"items"`
	Delivery  Delivery  `json:"delivery"`
	Notes     string    `json:"notes"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
