// internal/domain/payment/coordinator.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/summary"
)

var (
	// ErrBelowMinimum reports an amount under the processor's chargeable
	// floor; submission stays disabled, no request is issued
	ErrBelowMinimum = errors.New("amount below minimum chargeable amount")

	// ErrSyncInFlight reports a dropped call: another create/update request
	// is already running and the next triggering update will retry with the
	// latest amount
	ErrSyncInFlight = errors.New("payment session sync already in flight")
)

// Snapshot is the cart and delivery state captured when a payment session
// is opened
type Snapshot struct {
	Items          []order.Item
	Delivery       order.Delivery
	Notes          string
	DeliveryWindow string
}

// State describes the coordinator's session for display: whether the
// confirm button may be enabled, the secret to mount the payment UI
// against, and a user-facing message when submission is blocked.
type State struct {
	Ready        bool   `json:"ready"`
	ClientSecret string `json:"client_secret,omitempty"`
	Message      string `json:"message,omitempty"`
	Amount       int64  `json:"amount"`
}

// Coordinator keeps a remote payment session's authorized amount in sync
// with the displayed order total. One coordinator lives per checkout
// session, created lazily when the payment step is first entered.
type Coordinator struct {
	intake    *IntakeService
	client    IntentClient
	repo      order.Repository
	sink      summary.Sink
	minAmount int64
	currency  string
	log       *logrus.Logger

	inFlight atomic.Bool

	mu           sync.Mutex
	orderID      string
	intentID     string
	clientSecret string
	amount       int64
	message      string
}

// NewCoordinator creates a payment session coordinator
func NewCoordinator(intake *IntakeService, client IntentClient, repo order.Repository, sink summary.Sink, minAmount int64, currency string, log *logrus.Logger) *Coordinator {
	return &Coordinator{
		intake:    intake,
		client:    client,
		repo:      repo,
		sink:      sink,
		minAmount: minAmount,
		currency:  currency,
		log:       log,
	}
}

// SyncAmount is the sole entry point, invoked whenever totals recompute on
// the payment step. It creates the session on first success, refreshes it
// in place when the amount changes, and drops calls arriving while another
// request is in flight.
func (c *Coordinator) SyncAmount(ctx context.Context, amount int64, snap Snapshot) error {
	if amount < c.minAmount {
		c.setMessage(fmt.Sprintf("Add meals to reach at least %s.", formatUSD(c.minAmount)))
		return ErrBelowMinimum
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSyncInFlight
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	existing := c.intentID
	current := c.amount
	c.mu.Unlock()

	if existing == "" {
		return c.createSession(ctx, amount, snap)
	}
	if current == amount {
		// Amount unchanged; just clear any stale below-minimum message
		c.setMessage("")
		return nil
	}
	return c.refreshSession(ctx, existing, amount)
}

// State returns the current session state for display
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Ready:        c.clientSecret != "" && c.message == "",
		ClientSecret: c.clientSecret,
		Message:      c.message,
		Amount:       c.amount,
	}
}

func (c *Coordinator) createSession(ctx context.Context, amount int64, snap Snapshot) error {
	result, err := c.intake.CreateOrderIntent(ctx, IntakeRequest{
		Amount:   amount,
		Currency: c.currency,
		Items:    snap.Items,
		Delivery: snap.Delivery,
		Notes:    snap.Notes,
	})
	if err != nil {
		c.setMessage("Unable to prepare payment. Please try again.")
		return err
	}

	c.mu.Lock()
	c.orderID = result.OrderID
	c.intentID = result.IntentID
	c.clientSecret = result.ClientSecret
	c.amount = result.Amount
	c.message = ""
	c.mu.Unlock()

	// Best effort: the banner summary must never block or fail the flow
	if c.sink != nil {
		itemsCount := 0
		for _, item := range snap.Items {
			itemsCount += item.Quantity
		}
		if err := c.sink.Record(summary.Summary{
			Amount:         amount,
			Currency:       c.currency,
			ItemsCount:     itemsCount,
			DeliveryWindow: snap.DeliveryWindow,
		}); err != nil {
			c.log.WithError(err).Warn("Failed to cache order summary")
		}
	}

	return nil
}

func (c *Coordinator) refreshSession(ctx context.Context, intentID string, amount int64) error {
	intent, err := c.client.UpdateIntent(ctx, intentID, amount)
	if err != nil {
		c.setMessage("Unable to refresh payment. Please try again.")
		return err
	}

	c.mu.Lock()
	orderID := c.orderID
	c.clientSecret = intent.ClientSecret
	c.amount = intent.Amount
	c.message = ""
	c.mu.Unlock()

	if orderID != "" {
		if err := c.repo.UpdateAmount(orderID, amount); err != nil {
			c.log.WithError(err).WithField("order_id", orderID).Warn("Failed to sync order amount")
		}
	}

	return nil
}

func (c *Coordinator) setMessage(msg string) {
	c.mu.Lock()
	c.message = msg
	c.mu.Unlock()
}

func formatUSD(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
