package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

var (
	ErrDuplicate  = errors.New("duplicate idempotency key")
	ErrEmptyOrder = errors.New("order has no lines")
)

// OutOfStockError names the first item that could not be reserved.
type OutOfStockError struct {
	ItemID string
	Name   string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s", e.Name)
}

// Pricing mirrors the client's canonical bill formula. The server
// recomputes the total from the submitted lines and stores its own
// value; the client-sent total is informational only.
type Pricing struct {
	Currency       string
	DeliveryFee    int64
	TaxBasisPoints int64
}

func (p Pricing) GrandTotal(lines []domain.OrderLine) int64 {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Price * int64(l.Quantity)
	}
	if subtotal == 0 {
		return 0
	}
	tax := (subtotal*p.TaxBasisPoints + 5000) / 10000
	return subtotal + p.DeliveryFee + tax
}

type PlaceOrderInput struct {
	UserID         string
	IdempotencyKey string
	ItemsJSON      string
	AddressID      string
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// PlaceOrder creates a pending order from a frozen line payload. Stock
// is reserved here, at placement time; the client never checks stock
// when adding to the cart.
type PlaceOrder struct {
	orders  OrderRepo
	menu    MenuRepo
	idem    IdempotencyStore
	pricing Pricing
}

func NewPlaceOrder(orders OrderRepo, menu MenuRepo, idem IdempotencyStore, pricing Pricing) *PlaceOrder {
	return &PlaceOrder{orders: orders, menu: menu, idem: idem, pricing: pricing}
}

func (uc *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (*OrderRecord, error) {
	// Fast path: a re-tapped "Place Order" with the same key returns the
	// order already created.
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return uc.orders.GetByID(ctx, id)
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicate
		}
	}

	// A failed placement must not burn the key: drop the lock so the
	// same key can retry immediately instead of waiting out the TTL.
	fail := func(err error) (*OrderRecord, error) {
		if in.IdempotencyKey != "" {
			_ = uc.idem.Unlock(ctx, in.UserID, in.IdempotencyKey)
		}
		return nil, err
	}

	lines := domain.DecodeLines([]byte(in.ItemsJSON))
	if len(lines) == 0 {
		return fail(ErrEmptyOrder)
	}

	// Reserve stock line by line; on failure release what was taken.
	reserved := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		ok, err := uc.menu.ReserveStock(ctx, l.ItemID, l.Quantity)
		if err != nil {
			uc.release(ctx, reserved)
			return fail(err)
		}
		if !ok {
			uc.release(ctx, reserved)
			return fail(&OutOfStockError{ItemID: l.ItemID, Name: l.Name})
		}
		reserved = append(reserved, l)
	}

	rec := &OrderRecord{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Status:        string(domain.StatusPending),
		TotalCents:    uc.pricing.GrandTotal(lines),
		Currency:      uc.pricing.Currency,
		ItemsJSON:     string(domain.EncodeLines(lines)),
		PaymentMethod: domain.PaymentCashOnDelivery,
		PaymentStatus: string(domain.PaymentUnpaid),
		AddressID:     in.AddressID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.orders.Create(ctx, rec); err != nil {
		uc.release(ctx, reserved)
		return fail(err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, rec.ID)
	}
	return rec, nil
}

func (uc *PlaceOrder) release(ctx context.Context, lines []domain.OrderLine) {
	for _, l := range lines {
		_ = uc.menu.ReleaseStock(ctx, l.ItemID, l.Quantity)
	}
}
