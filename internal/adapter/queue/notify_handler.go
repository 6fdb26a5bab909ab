package queue

import (
	"context"
	"log/slog"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

// NotifyHandler consumes order.status_changed events and records the
// notification dispatch. Actual push delivery lives outside this
// service; the handler is the seam where it plugs in.
type NotifyHandler struct {
	log *slog.Logger
}

func NewNotifyHandler(log *slog.Logger) *NotifyHandler {
	return &NotifyHandler{log: log}
}

// HandleStatusChanged is used with queue.JSONHandler[usecase.OrderStatusChangedMsg].
func (h *NotifyHandler) HandleStatusChanged(ctx context.Context, msg usecase.OrderStatusChangedMsg) error {
	h.log.Info("order status notification",
		"order_id", msg.OrderID,
		"user_id", msg.UserID,
		"status", msg.Status,
	)
	return nil
}
