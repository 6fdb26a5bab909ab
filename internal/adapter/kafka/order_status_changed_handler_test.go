package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*usecase.OrderRecord
}

func newStubOrderRepo(recs ...*usecase.OrderRecord) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*usecase.OrderRecord)}
	for _, rec := range recs {
		r.orders[rec.ID] = rec
	}
	return r
}

func (r *stubOrderRepo) Create(context.Context, *usecase.OrderRecord) error { return nil }

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*usecase.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) ListByUser(context.Context, string) ([]usecase.OrderRecord, error) {
	return nil, nil
}

func (r *stubOrderRepo) ListAll(context.Context, string) ([]usecase.OrderRecord, error) {
	return nil, nil
}

func (r *stubOrderRepo) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *stubOrderRepo) UpdatePaymentStatus(context.Context, string, string) error { return nil }

type stubStatusCache struct {
	mu sync.Mutex
	m  map[string]string
}

func (c *stubStatusCache) SetStatus(_ context.Context, id, s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string]string)
	}
	c.m[id] = s
	return nil
}

func (c *stubStatusCache) GetStatus(_ context.Context, id string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.m[id]
	return s, ok, nil
}

func TestHandleMovesOrderForward(t *testing.T) {
	repo := newStubOrderRepo(&usecase.OrderRecord{ID: "o1", UserID: "u1", Status: "confirmed"})
	cache := &stubStatusCache{}
	h := NewOrderStatusChangedHandler(repo, cache)

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "preparing"})
	require.NoError(t, err)

	rec, _ := repo.GetByID(context.Background(), "o1")
	assert.Equal(t, "preparing", rec.Status)

	s, ok, _ := cache.GetStatus(context.Background(), "o1")
	assert.True(t, ok)
	assert.Equal(t, "preparing", s)
}

func TestHandleStaleEventIsDropped(t *testing.T) {
	repo := newStubOrderRepo(&usecase.OrderRecord{ID: "o1", Status: "out_for_delivery"})
	h := NewOrderStatusChangedHandler(repo, nil)

	// the order already moved past preparing; a late event is not an error
	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "preparing"})
	require.NoError(t, err)

	rec, _ := repo.GetByID(context.Background(), "o1")
	assert.Equal(t, "out_for_delivery", rec.Status)
}

func TestHandleUnknownStatusIsPoison(t *testing.T) {
	repo := newStubOrderRepo(&usecase.OrderRecord{ID: "o1", Status: "pending"})
	h := NewOrderStatusChangedHandler(repo, nil)

	// never retried: returning nil marks the message
	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "teleported"})
	assert.NoError(t, err)
}

func TestHandleUnknownOrderRetries(t *testing.T) {
	h := NewOrderStatusChangedHandler(newStubOrderRepo(), nil)
	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "ghost", Status: "confirmed"})
	assert.Error(t, err)
}
