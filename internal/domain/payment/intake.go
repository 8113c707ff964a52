// internal/domain/payment/intake.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/freshmeals/web/internal/domain/order"
)

// ErrNotConfigured is returned when no payment processor credentials are
// configured; payments degrade instead of crashing
var ErrNotConfigured = errors.New("payment processor not configured")

// IntakeRequest is a cart+delivery payload for which a payment session
// should be opened. Amount is in cents.
type IntakeRequest struct {
	Amount   int64
	Currency string
	Items    []order.Item
	Delivery order.Delivery
	Notes    string
}

// IntakeResult carries the recorded order id and the client secret the
// browser needs to confirm payment
type IntakeResult struct {
	OrderID      string
	IntentID     string
	ClientSecret string
	Amount       int64
}

// IntakeService records incoming orders and opens processor-side payment
// intents for them.
type IntakeService struct {
	repo   order.Repository
	client IntentClient
	log    *logrus.Logger
}

// NewIntakeService creates an order intake service. A nil client means the
// processor is unconfigured and every intake attempt reports that.
func NewIntakeService(repo order.Repository, client IntentClient, log *logrus.Logger) *IntakeService {
	return &IntakeService{
		repo:   repo,
		client: client,
		log:    log,
	}
}

// Configured reports whether a payment processor client is available
func (s *IntakeService) Configured() bool {
	return s.client != nil
}

// CreateOrderIntent records the order with status pending, then creates the
// processor intent. If the processor call fails the order is marked
// cancelled and the error is returned; the record of the attempt survives.
func (s *IntakeService) CreateOrderIntent(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	o := &order.Order{
		Amount:   req.Amount,
		Currency: req.Currency,
		Items:    req.Items,
		Delivery: req.Delivery,
		Notes:    req.Notes,
		Status:   order.StatusPending,
	}
	o.CreatedAt = time.Now().UTC()

	// Recorded before the remote call so a processor failure still leaves
	// an auditable order behind.
	if err := s.repo.Add(o); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"amount":   o.Amount,
		"currency": o.Currency,
		"items":    len(o.Items),
	}).Info("Order intent received")

	intent, err := s.client.CreateIntent(ctx, req.Amount, req.Currency)
	if err != nil {
		if updateErr := s.repo.UpdateStatus(o.ID, order.StatusCancelled); updateErr != nil {
			s.log.WithError(updateErr).WithField("order_id", o.ID).Warn("Failed to cancel order after processor error")
		}
		return nil, fmt.Errorf("processor intent creation failed: %w", err)
	}

	return &IntakeResult{
		OrderID:      o.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       req.Amount,
	}, nil
}
