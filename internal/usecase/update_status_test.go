package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

type fakeStatusCache struct {
	mu sync.Mutex
	m  map[string]string
}

func newFakeStatusCache() *fakeStatusCache {
	return &fakeStatusCache{m: make(map[string]string)}
}

func (f *fakeStatusCache) SetStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[id] = status
	return nil
}

func (f *fakeStatusCache) GetStatus(_ context.Context, id string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[id]
	return s, ok, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []OrderStatusChangedMsg
}

func (f *fakePublisher) PublishStatusChanged(_ context.Context, msg OrderStatusChangedMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return nil
}

func seedOrder(t *testing.T, repo *fakeOrderRepo, status string) *OrderRecord {
	t.Helper()
	rec := &OrderRecord{ID: "o1", UserID: "u1", Status: status, PaymentStatus: string(domain.PaymentUnpaid)}
	require.NoError(t, repo.Create(context.Background(), rec))
	return rec
}

func TestUpdateOrderStatusForward(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "pending")
	cache := newFakeStatusCache()
	pub := &fakePublisher{}
	uc := NewUpdateOrderStatus(orders, cache, pub, slog.Default())

	rec, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", rec.Status)

	cached, ok, _ := cache.GetStatus(context.Background(), "o1")
	assert.True(t, ok)
	assert.Equal(t, "confirmed", cached)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, OrderStatusChangedMsg{OrderID: "o1", UserID: "u1", Status: "confirmed"}, pub.msgs[0])
}

func TestUpdateOrderStatusIllegalMove(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "preparing")
	uc := NewUpdateOrderStatus(orders, newFakeStatusCache(), &fakePublisher{}, slog.Default())

	tests := []string{"confirmed", "cancelled", "preparing"}
	for _, to := range tests {
		_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", Status: to})
		assert.Error(t, err, to)
	}

	stored, _ := orders.GetByID(context.Background(), "o1")
	assert.Equal(t, "preparing", stored.Status)
}

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "pending")
	uc := NewUpdateOrderStatus(orders, newFakeStatusCache(), &fakePublisher{}, slog.Default())

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	uc := NewUpdateOrderStatus(newFakeOrderRepo(), newFakeStatusCache(), &fakePublisher{}, slog.Default())

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "ghost", Status: "confirmed"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderStatusConflict(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "pending")
	uc := NewUpdateOrderStatus(orders, newFakeStatusCache(), &fakePublisher{}, slog.Default())

	// a concurrent writer cancels the row before this update lands
	ok, err := orders.UpdateStatusIf(context.Background(), "o1", "pending", "cancelled")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", Status: "confirmed"})
	assert.Error(t, err)

	stored, _ := orders.GetByID(context.Background(), "o1")
	assert.Equal(t, "cancelled", stored.Status)
}

func TestUpdatePaymentStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "delivered")
	uc := NewUpdateOrderStatus(orders, newFakeStatusCache(), &fakePublisher{}, slog.Default())

	rec, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", rec.PaymentStatus)

	_, err = uc.Execute(context.Background(), UpdateOrderStatusInput{OrderID: "o1", PaymentStatus: "refunded"})
	assert.Error(t, err)
}
