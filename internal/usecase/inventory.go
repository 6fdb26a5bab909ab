package usecase

import (
	"context"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// InventoryMetrics is the summary block on the admin dashboard.
type InventoryMetrics struct {
	TotalItems      int
	LowStockCount   int
	OutOfStockCount int
	StockValue      int64 // Σ price × stock, minor units
}

// Inventory serves the admin inventory view: the full item list with
// derived metrics, and partial item updates.
type Inventory struct {
	menu      MenuRepo
	menuCache MenuCache
}

func NewInventory(menu MenuRepo, menuCache MenuCache) *Inventory {
	return &Inventory{menu: menu, menuCache: menuCache}
}

func (uc *Inventory) List(ctx context.Context) ([]domain.MenuItem, InventoryMetrics, error) {
	items, err := uc.menu.List(ctx)
	if err != nil {
		return nil, InventoryMetrics{}, err
	}
	m := InventoryMetrics{TotalItems: len(items)}
	for _, it := range items {
		if it.OutOfStock() {
			m.OutOfStockCount++
		} else if it.LowStock() {
			m.LowStockCount++
		}
		m.StockValue += it.Price.Cents * int64(it.StockQuantity)
	}
	return items, m, nil
}

// ItemPatch carries the fields an admin may change; nil means keep.
type ItemPatch struct {
	Name              *string
	Description       *string
	PriceCents        *int64
	Category          *string
	StockQuantity     *int
	LowStockThreshold *int
	IsAvailable       *bool
}

func (uc *Inventory) UpdateItem(ctx context.Context, itemID string, patch ItemPatch) (domain.MenuItem, error) {
	item, err := uc.menu.GetByID(ctx, itemID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		item.Price.Cents = *patch.PriceCents
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.StockQuantity != nil {
		item.StockQuantity = *patch.StockQuantity
	}
	if patch.LowStockThreshold != nil {
		item.LowStockThreshold = *patch.LowStockThreshold
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
	}
	if err := uc.menu.Update(ctx, &item); err != nil {
		return domain.MenuItem{}, err
	}
	// The public menu listing is cached; an edit must show up there.
	if uc.menuCache != nil {
		_ = uc.menuCache.Invalidate(ctx)
	}
	return item, nil
}
