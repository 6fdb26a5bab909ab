package usecase

import (
	"context"
	"time"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// OrderRecord is the persistence shape of an order (kept out of
// domain). ItemsJSON is the frozen [{id,name,price,quantity}] payload.
type OrderRecord struct {
	ID            string
	UserID        string
	Status        string
	TotalCents    int64
	Currency      string
	ItemsJSON     string
	PaymentMethod string
	PaymentStatus string
	AddressID     string
	CreatedAt     time.Time
}

type OrderRepo interface {
	Create(ctx context.Context, o *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
	ListByUser(ctx context.Context, userID string) ([]OrderRecord, error)
	ListAll(ctx context.Context, status string) ([]OrderRecord, error)
	// UpdateStatusIf flips status only when the row still carries
	// fromStatus; reports whether a row changed.
	UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
}

type MenuRepo interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (domain.MenuItem, error)
	// ReserveStock decrements stock by qty only if enough remains;
	// reports whether the reservation landed.
	ReserveStock(ctx context.Context, id string, qty int) (bool, error)
	ReleaseStock(ctx context.Context, id string, qty int) error
	Update(ctx context.Context, item *domain.MenuItem) error
}

type AddressRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	GetByID(ctx context.Context, id string) (domain.Address, error)
	Create(ctx context.Context, a *domain.Address) error
	Update(ctx context.Context, a *domain.Address) error
	Delete(ctx context.Context, id string) error
	// ClearDefault drops the default flag from every address of the
	// user; paired with Create/Update to keep at most one default.
	ClearDefault(ctx context.Context, userID string) error
}

type UserRecord struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	IsVerified   bool
}

type UserRepo interface {
	Create(ctx context.Context, u *UserRecord) error
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetByID(ctx context.Context, id string) (*UserRecord, error)
}

// StatusCache is the fast path for order status lookups.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

// MenuCache caches the serialized menu listing.
type MenuCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// EventPublisher fans order status changes out to the notification side.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}
