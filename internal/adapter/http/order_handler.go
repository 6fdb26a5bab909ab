package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http/middleware"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type OrderHandler struct {
	place  *usecase.PlaceOrder
	query  usecase.OrderRepo
	status usecase.StatusCache // optional fast path
}

func NewOrderHandler(place *usecase.PlaceOrder, query usecase.OrderRepo, status usecase.StatusCache) *OrderHandler {
	return &OrderHandler{place: place, query: query, status: status}
}

type placeOrderReq struct {
	UserID    string `json:"userId" binding:"required"`
	Items     string `json:"items" binding:"required"`
	Total     int64  `json:"total"`
	AddressID string `json:"addressId"`
}

// PlaceOrder handles POST /api/orders. The items payload is the frozen
// [{id,name,price,quantity}] array; the stored total is recomputed
// server-side from it.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.UserID != middleware.UserOf(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot place orders for another user"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.place.Execute(ctx, usecase.PlaceOrderInput{
		UserID:         req.UserID,
		IdempotencyKey: idemKey,
		ItemsJSON:      req.Items,
		AddressID:      req.AddressID,
	})
	if err != nil {
		var oos *usecase.OutOfStockError
		switch {
		case errors.Is(err, usecase.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "order already being placed"})
		case errors.Is(err, usecase.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "order has no items"})
		case errors.As(err, &oos):
			c.JSON(http.StatusConflict, gin.H{"error": oos.Error()})
		default:
			logging.From(c).Error("place order failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}

	middleware.CountOrderPlaced()
	c.JSON(http.StatusCreated, toOrderResp(rec))
}

// History handles GET /api/orders?userId=. Customers only see their
// own orders; the admin console uses /api/admin/orders instead.
func (h *OrderHandler) History(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = middleware.UserOf(c)
	}
	if userID != middleware.UserOf(c) && middleware.RoleOf(c) != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's orders"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	recs, err := h.query.ListByUser(ctx, userID)
	if err != nil {
		logging.From(c).Error("order history failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toOrderResps(recs))
}

// GetByID handles GET /api/orders/:id. The status cache, when warm,
// overrides the row status so a just-updated order shows its newest
// step without waiting for replication.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rec, err := h.query.GetByID(ctx, id)
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	if rec.UserID != middleware.UserOf(c) && middleware.RoleOf(c) != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}

	if h.status != nil {
		if s, ok, err := h.status.GetStatus(ctx, rec.ID); err == nil && ok {
			rec.Status = s
		}
	}
	c.JSON(http.StatusOK, toOrderResp(rec))
}
