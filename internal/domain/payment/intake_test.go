// internal/domain/payment/intake_test.go
package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmeals/web/internal/domain/order"
)

func TestIntakeUnconfiguredProcessor(t *testing.T) {
	repo := order.NewMemoryRepository()
	intake := NewIntakeService(repo, nil, quietLogger())

	assert.False(t, intake.Configured())

	_, err := intake.CreateOrderIntent(context.Background(), IntakeRequest{Amount: 5000, Currency: "usd"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Nothing recorded when the processor is unavailable
	assert.Empty(t, repo.List())
}

func TestIntakeRecordsPendingOrderThenCreatesIntent(t *testing.T) {
	repo := order.NewMemoryRepository()
	client := &fakeClient{}
	intake := NewIntakeService(repo, client, quietLogger())

	result, err := intake.CreateOrderIntent(context.Background(), IntakeRequest{
		Amount:   4800,
		Currency: "usd",
		Items:    []order.Item{{ID: "bowl", Quantity: 2, Price: 2000, LineTotal: 4000}},
		Notes:    "ring twice",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test", result.ClientSecret)
	require.NotEmpty(t, result.OrderID)

	recorded, err := repo.FindByID(result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, recorded.Status)
	assert.Equal(t, int64(4800), recorded.Amount)
	assert.Equal(t, "ring twice", recorded.Notes)
	assert.False(t, recorded.CreatedAt.IsZero())
}

func TestIntakeMarksOrderCancelledOnProcessorFailure(t *testing.T) {
	repo := order.NewMemoryRepository()
	client := &fakeClient{failCreate: errors.New("processor down")}
	intake := NewIntakeService(repo, client, quietLogger())

	_, err := intake.CreateOrderIntent(context.Background(), IntakeRequest{Amount: 4800, Currency: "usd"})
	require.Error(t, err)

	// The attempt is recorded before the remote call and survives it
	orders := repo.List()
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusCancelled, orders[0].Status)
}
