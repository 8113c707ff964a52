// internal/domain/payment/client.go
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// Intent is the processor-side payment session: an amount-bound
// authorization object whose client secret lets the browser complete
// payment without exposing processor credentials.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

// IntentClient abstracts payment-intent creation and amount updates on the
// payment processor.
type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	UpdateIntent(ctx context.Context, id string, amount int64) (*Intent, error)
}

// StripeClient implements IntentClient against the Stripe API
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a Stripe-backed intent client
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a payment intent for the given amount in cents
func (s *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
	}, nil
}

// UpdateIntent changes the authorized amount of an existing intent and
// returns the refreshed session
func (s *StripeClient) UpdateIntent(ctx context.Context, id string, amount int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
		Amount: stripe.Int64(amount),
	}

	pi, err := s.api.PaymentIntents.Update(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
	}, nil
}
