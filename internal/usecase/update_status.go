package usecase

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/lifecycle"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict means another update landed between read and
	// write; the caller should refetch and retry explicitly.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type UpdateOrderStatusInput struct {
	OrderID       string
	Status        string // optional
	PaymentStatus string // optional
}

// UpdateOrderStatus applies an admin-issued status and/or payment
// change. Lifecycle rules are enforced here, on the backend; the client
// only greys out invalid actions. Applied changes fan out to the status
// cache best-effort and to the event bus.
type UpdateOrderStatus struct {
	orders OrderRepo
	cache  StatusCache
	events EventPublisher
	log    *slog.Logger
}

func NewUpdateOrderStatus(orders OrderRepo, cache StatusCache, events EventPublisher, log *slog.Logger) *UpdateOrderStatus {
	return &UpdateOrderStatus{orders: orders, cache: cache, events: events, log: log}
}

func (uc *UpdateOrderStatus) Execute(ctx context.Context, in UpdateOrderStatusInput) (*OrderRecord, error) {
	rec, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil || rec == nil {
		return nil, ErrOrderNotFound
	}

	if in.Status != "" {
		to, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		from, err := domain.ParseStatus(rec.Status)
		if err != nil {
			// A row with a corrupt status can still be repaired by an
			// explicit admin move; treat it as pending for validation.
			from = domain.StatusPending
		}
		if _, err := lifecycle.Transition(from, to); err != nil {
			return nil, err
		}
		// Guarded flip: only succeeds if the row still carries the
		// status we validated against.
		ok, err := uc.orders.UpdateStatusIf(ctx, rec.ID, rec.Status, string(to))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStatusConflict
		}
		rec.Status = string(to)

		if uc.cache != nil {
			if err := uc.cache.SetStatus(ctx, rec.ID, rec.Status); err != nil {
				uc.log.Warn("status cache update failed", "order_id", rec.ID, "error", err)
			}
		}
		if uc.events != nil {
			msg := OrderStatusChangedMsg{OrderID: rec.ID, UserID: rec.UserID, Status: rec.Status}
			if err := uc.events.PublishStatusChanged(ctx, msg); err != nil {
				uc.log.Warn("status event publish failed", "order_id", rec.ID, "error", err)
			}
		}
	}

	if in.PaymentStatus != "" {
		switch domain.PaymentStatus(in.PaymentStatus) {
		case domain.PaymentUnpaid, domain.PaymentPaid:
		default:
			return nil, errors.New("unknown payment status")
		}
		if err := uc.orders.UpdatePaymentStatus(ctx, rec.ID, in.PaymentStatus); err != nil {
			return nil, err
		}
		rec.PaymentStatus = in.PaymentStatus
	}

	return rec, nil
}
