package client

import (
	"context"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// CatalogClient fetches the menu. The returned items are a read-only
// cached copy for the screen lifetime; filtering and sorting happen
// locally in the catalog package.
type CatalogClient struct {
	c        *Client
	currency string
}

func NewCatalogClient(c *Client, currency string) *CatalogClient {
	return &CatalogClient{c: c, currency: currency}
}

func (cc *CatalogClient) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var resp []wireMenuItem
	if err := cc.c.do(ctx, "GET", "/api/menu", nil, &resp); err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(resp))
	for _, m := range resp {
		items = append(items, m.toDomain(cc.currency))
	}
	return items, nil
}
