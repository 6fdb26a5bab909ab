package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

// AdminHandler serves the console: the order queue, status moves and
// the inventory view. Everything here sits behind RequireAdmin.
type AdminHandler struct {
	orders    usecase.OrderRepo
	update    *usecase.UpdateOrderStatus
	inventory *usecase.Inventory
}

func NewAdminHandler(orders usecase.OrderRepo, update *usecase.UpdateOrderStatus, inventory *usecase.Inventory) *AdminHandler {
	return &AdminHandler{orders: orders, update: update, inventory: inventory}
}

// ListOrders handles GET /api/admin/orders?status=.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recs, err := h.orders.ListAll(ctx, c.Query("status"))
	if err != nil {
		logging.From(c).Error("admin order listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderResps(recs)})
}

type statusPatchReq struct {
	OrderID       string `json:"orderId" binding:"required"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateOrderStatus handles PATCH /api/admin/orders. Illegal moves come
// back 422; a concurrent flip comes back 409 so the console refetches.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req statusPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.update.Execute(ctx, usecase.UpdateOrderStatusInput{
		OrderID:       req.OrderID,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		case errors.Is(err, usecase.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "order changed concurrently, refetch and retry"})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderResp(rec)})
}

type inventoryMetricsResp struct {
	TotalItems      int   `json:"totalItems"`
	LowStockCount   int   `json:"lowStockCount"`
	OutOfStockCount int   `json:"outOfStockCount"`
	StockValue      int64 `json:"stockValue"`
}

// Inventory handles GET /api/admin/inventory.
func (h *AdminHandler) Inventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, m, err := h.inventory.List(ctx)
	if err != nil {
		logging.From(c).Error("inventory listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": toMenuItemResps(items),
		"metrics": inventoryMetricsResp{
			TotalItems:      m.TotalItems,
			LowStockCount:   m.LowStockCount,
			OutOfStockCount: m.OutOfStockCount,
			StockValue:      m.StockValue,
		},
	})
}

type itemPatchReq struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Price             *int64  `json:"price"`
	Category          *string `json:"category"`
	StockQuantity     *int    `json:"stockQuantity"`
	LowStockThreshold *int    `json:"lowStockThreshold"`
	IsAvailable       *bool   `json:"isAvailable"`
}

// UpdateInventoryItem handles PUT /api/admin/inventory/:id. Absent
// fields keep their stored values.
func (h *AdminHandler) UpdateInventoryItem(c *gin.Context) {
	var req itemPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.inventory.UpdateItem(ctx, c.Param("id"), usecase.ItemPatch{
		Name:              req.Name,
		Description:       req.Description,
		PriceCents:        req.Price,
		Category:          req.Category,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		IsAvailable:       req.IsAvailable,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, toMenuItemResp(item))
}
