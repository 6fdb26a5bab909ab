package kafka

import (
	"context"
	"fmt"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/lifecycle"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

// OrderStatusChangedHandler ingests progress events from the
// kitchen/delivery ops side and moves the order forward. The same
// lifecycle rules the admin console obeys apply here: no backwards
// moves, no leaving a terminal state.
type OrderStatusChangedHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.StatusCache // optional
}

func NewOrderStatusChangedHandler(repo usecase.OrderRepo, cache usecase.StatusCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Repo: repo, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	to, err := domain.ParseStatus(ev.Status)
	if err != nil {
		// Poison: an unknown status never becomes valid on retry.
		return nil
	}

	rec, err := h.Repo.GetByID(ctx, ev.OrderID)
	if err != nil || rec == nil {
		return fmt.Errorf("order %s: %w", ev.OrderID, err)
	}
	from, err := domain.ParseStatus(rec.Status)
	if err != nil {
		return nil
	}
	if !lifecycle.CanTransition(from, to) {
		// Stale or duplicate event; the order already moved past it.
		return nil
	}

	// Guarded flip (current status must still match what we validated).
	ok, err := h.Repo.UpdateStatusIf(ctx, ev.OrderID, string(from), string(to))
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race with another update; the retry will re-validate.
		return nil
	}

	// Cache best-effort
	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, string(to))
	}
	return nil
}
