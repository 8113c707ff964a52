// internal/domain/checkout/session.go
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/freshmeals/web/internal/domain/cart"
	"github.com/freshmeals/web/internal/domain/catalog"
	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/payment"
)

// Step identifies a panel in the strictly linear order flow
type Step int

const (
	StepCart     Step = 1
	StepDelivery Step = 2
	StepPayment  Step = 3
)

var (
	// ErrEmptyCart blocks advancing past meal selection with nothing chosen
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidDelivery blocks advancing past the delivery form until its
	// required fields are filled
	ErrInvalidDelivery = errors.New("delivery details incomplete")
)

// FeeRules carries the configured shipping thresholds, in cents
type FeeRules struct {
	FreeThreshold int64
	FlatFee       int64
}

// Session is one visitor's order-in-progress: cart, delivery details, the
// current step, and the lazily created payment coordinator. Bound to the
// browser by an opaque cookie token.
type Session struct {
	ID   string
	Cart *cart.Cart

	rules       FeeRules
	prices      map[string]int64
	coordinator func(sessionID string) *payment.Coordinator

	mu       sync.Mutex
	step     Step
	delivery DeliveryDetails
	coord    *payment.Coordinator
}

// NewSession creates a session at the cart step. The coordinator factory is
// invoked at most once, when the payment step is first entered.
func NewSession(id string, rules FeeRules, coordinatorFactory func(sessionID string) *payment.Coordinator) *Session {
	return &Session{
		ID:          id,
		Cart:        cart.New(),
		rules:       rules,
		prices:      catalog.Prices(),
		coordinator: coordinatorFactory,
		step:        StepCart,
	}
}

// Step returns the current step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Delivery returns the stored delivery details
func (s *Session) Delivery() DeliveryDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivery
}

// SetDelivery stores delivery details; validation gates the step
// transition, not the save
func (s *Session) SetDelivery(d DeliveryDetails) {
	s.mu.Lock()
	s.delivery = d
	s.mu.Unlock()
}

// Totals recomputes order totals from the current cart state
func (s *Session) Totals() cart.Totals {
	return cart.ComputeTotals(s.Cart.Lines(), s.prices, s.rules.FreeThreshold, s.rules.FlatFee)
}

// Next advances one step when its gate passes. Entering the payment step
// recomputes totals, initializes the coordinator on first entry, and syncs
// the payment session with the current total.
func (s *Session) Next(ctx context.Context) (Step, error) {
	s.mu.Lock()
	current := s.step
	delivery := s.delivery
	s.mu.Unlock()

	switch current {
	case StepCart:
		if s.Cart.TotalItemCount() == 0 {
			return current, ErrEmptyCart
		}
		return s.setStep(StepDelivery), nil
	case StepDelivery:
		if delivery.Validate() != nil {
			return current, ErrInvalidDelivery
		}
		next := s.setStep(StepPayment)
		s.SyncPayment(ctx)
		return next, nil
	default:
		// Payment is the terminal step for forward navigation
		return current, nil
	}
}

// Back moves one step backward; always permitted, floor at the cart step
func (s *Session) Back() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepCart {
		s.step--
	}
	return s.step
}

// SyncPayment pushes the current total into the payment coordinator.
// Below-minimum and in-flight outcomes are reported states, visible through
// PaymentState, never fatal.
func (s *Session) SyncPayment(ctx context.Context) payment.State {
	coord := s.ensureCoordinator()
	if coord == nil {
		return payment.State{Message: "Payments are currently unavailable."}
	}

	// Every outcome (below minimum, dropped sync, remote failure) surfaces
	// through the coordinator state as a user-facing message
	totals := s.Totals()
	_ = coord.SyncAmount(ctx, totals.Total, s.snapshot())
	return coord.State()
}

// PaymentState returns the coordinator state without triggering a sync
func (s *Session) PaymentState() payment.State {
	s.mu.Lock()
	coord := s.coord
	s.mu.Unlock()

	if coord == nil {
		return payment.State{}
	}
	return coord.State()
}

func (s *Session) setStep(step Step) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
	return s.step
}

func (s *Session) ensureCoordinator() *payment.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coord == nil && s.coordinator != nil {
		s.coord = s.coordinator(s.ID)
	}
	return s.coord
}

// snapshot captures cart lines and delivery details for order recording
func (s *Session) snapshot() payment.Snapshot {
	s.mu.Lock()
	delivery := s.delivery
	s.mu.Unlock()

	lines := s.Cart.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, ok := catalog.Find(line.ItemID)
		if !ok {
			continue
		}
		items = append(items, order.Item{
			ID:        line.ItemID,
			Name:      item.Name,
			Quantity:  line.Quantity,
			Price:     item.UnitPrice,
			LineTotal: int64(line.Quantity) * item.UnitPrice,
		})
	}

	return payment.Snapshot{
		Items: items,
		Delivery: order.Delivery{
			Name:       delivery.Name,
			Address1:   delivery.Address1,
			Address2:   delivery.Address2,
			City:       delivery.City,
			Zip:        delivery.Zip,
			Phone:      delivery.Phone,
			Window:     delivery.Window,
			Preference: delivery.Preference,
		},
		Notes:          delivery.Notes,
		DeliveryWindow: delivery.Window,
	}
}
