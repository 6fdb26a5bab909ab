package domain

import "time"

// MenuItem is a catalog entry. The client holds a read-only cached copy;
// the catalog service owns the record.
type MenuItem struct {
	ID                string
	Name              string
	Description       string
	Price             Money
	Category          string
	StockQuantity     int
	LowStockThreshold int
	Unit              string
	IsAvailable       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m MenuItem) LowStock() bool {
	return m.StockQuantity > 0 && m.StockQuantity <= m.LowStockThreshold
}

func (m MenuItem) OutOfStock() bool { return m.StockQuantity <= 0 }
