package client

import (
	"context"
	"net/url"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// AdminClient backs the admin console: the order queue, status updates
// and the inventory view.
type AdminClient struct {
	c        *Client
	currency string
}

func NewAdminClient(c *Client, currency string) *AdminClient {
	return &AdminClient{c: c, currency: currency}
}

func (ad *AdminClient) ListOrders(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	path := "/api/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var resp struct {
		Orders []wireOrder `json:"orders"`
	}
	if err := ad.c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(resp.Orders))
	for _, w := range resp.Orders {
		out = append(out, w.toDomain(ad.currency))
	}
	return out, nil
}

type StatusPatch struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

func (ad *AdminClient) UpdateOrderStatus(ctx context.Context, patch StatusPatch) (domain.Order, error) {
	var resp struct {
		Order wireOrder `json:"order"`
	}
	if err := ad.c.do(ctx, "PATCH", "/api/admin/orders", patch, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Order.toDomain(ad.currency), nil
}

// InventoryMetrics is the dashboard summary next to the item list.
type InventoryMetrics struct {
	TotalItems      int   `json:"totalItems"`
	LowStockCount   int   `json:"lowStockCount"`
	OutOfStockCount int   `json:"outOfStockCount"`
	StockValue      int64 `json:"stockValue"`
}

func (ad *AdminClient) Inventory(ctx context.Context) ([]domain.MenuItem, InventoryMetrics, error) {
	var resp struct {
		Items   []wireMenuItem   `json:"items"`
		Metrics InventoryMetrics `json:"metrics"`
	}
	if err := ad.c.do(ctx, "GET", "/api/admin/inventory", nil, &resp); err != nil {
		return nil, InventoryMetrics{}, err
	}
	items := make([]domain.MenuItem, 0, len(resp.Items))
	for _, m := range resp.Items {
		items = append(items, m.toDomain(ad.currency))
	}
	return items, resp.Metrics, nil
}

// ItemPatch is a partial menu item update; nil fields are left alone.
type ItemPatch struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	Price             *int64  `json:"price,omitempty"`
	Category          *string `json:"category,omitempty"`
	StockQuantity     *int    `json:"stockQuantity,omitempty"`
	LowStockThreshold *int    `json:"lowStockThreshold,omitempty"`
	IsAvailable       *bool   `json:"isAvailable,omitempty"`
}

func (ad *AdminClient) UpdateInventoryItem(ctx context.Context, itemID string, patch ItemPatch) (domain.MenuItem, error) {
	var resp wireMenuItem
	if err := ad.c.do(ctx, "PUT", "/api/admin/inventory/"+url.PathEscape(itemID), patch, &resp); err != nil {
		return domain.MenuItem{}, err
	}
	return resp.toDomain(ad.currency), nil
}
