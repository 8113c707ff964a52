// internal/domain/payment/coordinator_test.go
package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmeals/web/internal/domain/order"
	"github.com/freshmeals/web/internal/domain/summary"
)

// fakeClient counts calls and can hold a create open until released
type fakeClient struct {
	mu          sync.Mutex
	createCalls int
	updateCalls int
	createGate  chan struct{}
	started     chan struct{}
	failCreate  error
}

func (f *fakeClient) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.createGate != nil {
		<-f.createGate
	}
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	return &Intent{ID: "pi_test", ClientSecret: "cs_test", Amount: amount}, nil
}

func (f *fakeClient) UpdateIntent(ctx context.Context, id string, amount int64) (*Intent, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	return &Intent{ID: id, ClientSecret: "cs_test_2", Amount: amount}, nil
}

func (f *fakeClient) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.updateCalls
}

type failingSink struct{}

func (failingSink) Record(summary.Summary) error { return errors.New("sink unavailable") }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestCoordinator(client IntentClient, repo order.Repository, sink summary.Sink) *Coordinator {
	log := quietLogger()
	intake := NewIntakeService(repo, client, log)
	return NewCoordinator(intake, client, repo, sink, 50, "usd", log)
}

func TestSyncAmountBelowMinimumIssuesNoRequest(t *testing.T) {
	client := &fakeClient{}
	coord := newTestCoordinator(client, order.NewMemoryRepository(), nil)

	err := coord.SyncAmount(context.Background(), 49, Snapshot{})
	assert.ErrorIs(t, err, ErrBelowMinimum)

	creates, updates := client.calls()
	assert.Zero(t, creates)
	assert.Zero(t, updates)

	state := coord.State()
	assert.False(t, state.Ready)
	assert.NotEmpty(t, state.Message)
}

func TestSyncAmountCreatesSessionAndRecordsOrder(t *testing.T) {
	client := &fakeClient{}
	repo := order.NewMemoryRepository()
	store := summary.NewMemoryStore()
	coord := newTestCoordinator(client, repo, store.ForSession("visitor"))

	snap := Snapshot{
		Items:          []order.Item{{ID: "bowl", Name: "Bowl", Quantity: 3, Price: 1600, LineTotal: 4800}},
		DeliveryWindow: "evening",
	}
	require.NoError(t, coord.SyncAmount(context.Background(), 5600, snap))

	state := coord.State()
	assert.True(t, state.Ready)
	assert.Equal(t, "cs_test", state.ClientSecret)
	assert.Equal(t, int64(5600), state.Amount)

	orders := repo.List()
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusPending, orders[0].Status)
	assert.Equal(t, int64(5600), orders[0].Amount)

	last, ok := store.Last("visitor")
	require.True(t, ok)
	assert.Equal(t, 3, last.ItemsCount)
	assert.Equal(t, "evening", last.DeliveryWindow)

	// The summary is bound to its own session token
	_, ok = store.Last("someone-else")
	assert.False(t, ok)
}

func TestSyncAmountUpdatesInPlaceOnAmountChange(t *testing.T) {
	client := &fakeClient{}
	repo := order.NewMemoryRepository()
	coord := newTestCoordinator(client, repo, nil)

	ctx := context.Background()
	require.NoError(t, coord.SyncAmount(ctx, 5000, Snapshot{}))
	require.NoError(t, coord.SyncAmount(ctx, 6400, Snapshot{}))

	creates, updates := client.calls()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, updates)

	state := coord.State()
	assert.Equal(t, "cs_test_2", state.ClientSecret)
	assert.Equal(t, int64(6400), state.Amount)

	// The recorded order tracks the refreshed amount
	orders := repo.List()
	require.Len(t, orders, 1)
	assert.Equal(t, int64(6400), orders[0].Amount)
}

func TestSyncAmountUnchangedAmountIsNoOp(t *testing.T) {
	client := &fakeClient{}
	coord := newTestCoordinator(client, order.NewMemoryRepository(), nil)

	ctx := context.Background()
	require.NoError(t, coord.SyncAmount(ctx, 5000, Snapshot{}))
	require.NoError(t, coord.SyncAmount(ctx, 5000, Snapshot{}))

	creates, updates := client.calls()
	assert.Equal(t, 1, creates)
	assert.Zero(t, updates)
}

func TestSyncAmountDropsConcurrentCalls(t *testing.T) {
	client := &fakeClient{
		createGate: make(chan struct{}),
		started:    make(chan struct{}, 1),
	}
	coord := newTestCoordinator(client, order.NewMemoryRepository(), nil)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		done <- coord.SyncAmount(ctx, 5000, Snapshot{})
	}()

	// Wait until the first call is inside the client
	select {
	case <-client.started:
	case <-time.After(time.Second):
		t.Fatal("first sync never reached the client")
	}

	// A second call while the first is in flight is dropped, not queued
	err := coord.SyncAmount(ctx, 6000, Snapshot{})
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(client.createGate)
	require.NoError(t, <-done)

	creates, _ := client.calls()
	assert.Equal(t, 1, creates)

	// The dropped amount is not lost: the next triggering update carries it
	require.NoError(t, coord.SyncAmount(ctx, 6000, Snapshot{}))
	state := coord.State()
	assert.Equal(t, int64(6000), state.Amount)
}

func TestSyncAmountRecoversAfterBelowMinimum(t *testing.T) {
	client := &fakeClient{}
	coord := newTestCoordinator(client, order.NewMemoryRepository(), nil)

	ctx := context.Background()
	require.NoError(t, coord.SyncAmount(ctx, 5000, Snapshot{}))

	assert.ErrorIs(t, coord.SyncAmount(ctx, 49, Snapshot{}), ErrBelowMinimum)
	assert.False(t, coord.State().Ready)

	// Same amount as the live session: no new request, message cleared
	require.NoError(t, coord.SyncAmount(ctx, 5000, Snapshot{}))
	state := coord.State()
	assert.True(t, state.Ready)
	assert.Empty(t, state.Message)
}

func TestFailingSummarySinkDoesNotFailTheFlow(t *testing.T) {
	client := &fakeClient{}
	repo := order.NewMemoryRepository()
	coord := newTestCoordinator(client, repo, failingSink{})

	require.NoError(t, coord.SyncAmount(context.Background(), 5000, Snapshot{}))
	assert.True(t, coord.State().Ready)
	assert.Len(t, repo.List(), 1)
}
