package client

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// recentOrders is how many fetched orders the back-navigation cache
// keeps before evicting the least recently viewed.
const recentOrders = 32

// OrderClient places orders and reads history. GetByID keeps a small
// LRU of recently viewed orders so tapping back and forth between the
// history list and a detail screen doesn't refetch every time; anything
// returned by History refreshes its cache entry.
type OrderClient struct {
	c        *Client
	currency string
	recent   *lru.Cache[string, domain.Order]
}

func NewOrderClient(c *Client, currency string) *OrderClient {
	cache, _ := lru.New[string, domain.Order](recentOrders)
	return &OrderClient{c: c, currency: currency, recent: cache}
}

// PlaceInput is the placement request. Total is the client-computed
// grand total in minor units; the backend recomputes and stores its own
// canonical value. IdempotencyKey dedupes double-tapped checkouts: the
// caller keeps one key per checkout attempt so a re-tap replays the
// same order instead of creating a second one. Left empty, Place
// generates a fresh key.
type PlaceInput struct {
	UserID         string
	Lines          []domain.OrderLine
	Total          int64
	AddressID      string
	IdempotencyKey string
}

type wirePlaceRequest struct {
	UserID    string `json:"userId"`
	Items     string `json:"items"`
	Total     int64  `json:"total"`
	AddressID string `json:"addressId,omitempty"`
}

func (oc *OrderClient) Place(ctx context.Context, in PlaceInput) (domain.Order, error) {
	req := wirePlaceRequest{
		UserID:    in.UserID,
		Items:     string(domain.EncodeLines(in.Lines)),
		Total:     in.Total,
		AddressID: in.AddressID,
	}
	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	hdr := map[string]string{"X-Idempotency-Key": key}
	var resp wireOrder
	if err := oc.c.doWith(ctx, "POST", "/api/orders", hdr, req, &resp); err != nil {
		return domain.Order{}, err
	}
	o := resp.toDomain(oc.currency)
	oc.recent.Add(o.ID, o)
	return o, nil
}

func (oc *OrderClient) History(ctx context.Context, userID string) ([]domain.Order, error) {
	var resp []wireOrder
	path := "/api/orders?userId=" + url.QueryEscape(userID)
	if err := oc.c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(resp))
	for _, w := range resp {
		o := w.toDomain(oc.currency)
		oc.recent.Add(o.ID, o)
		orders = append(orders, o)
	}
	return orders, nil
}

func (oc *OrderClient) GetByID(ctx context.Context, orderID string) (domain.Order, error) {
	if o, ok := oc.recent.Get(orderID); ok {
		return o, nil
	}
	var resp wireOrder
	if err := oc.c.do(ctx, "GET", "/api/orders/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return domain.Order{}, err
	}
	o := resp.toDomain(oc.currency)
	oc.recent.Add(o.ID, o)
	return o, nil
}

// Forget drops a cached order, forcing the next GetByID to refetch.
// Used after a status change notification.
func (oc *OrderClient) Forget(orderID string) {
	oc.recent.Remove(orderID)
}
