package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http/middleware"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type AddressHandler struct {
	repo usecase.AddressRepo
}

func NewAddressHandler(repo usecase.AddressRepo) *AddressHandler {
	return &AddressHandler{repo: repo}
}

type addressReq struct {
	UserID    string `json:"userId"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// List handles GET /api/addresses?userId=.
func (h *AddressHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = middleware.UserOf(c)
	}
	if userID != middleware.UserOf(c) && middleware.RoleOf(c) != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's addresses"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	addrs, err := h.repo.ListByUser(ctx, userID)
	if err != nil {
		logging.From(c).Error("address listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toAddressResps(addrs))
}

// Create handles POST /api/addresses. Marking an address default clears
// the flag from the rest of the user's book first, so at most one
// default survives any write.
func (h *AddressHandler) Create(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	userID := middleware.UserOf(c)
	if req.UserID != "" && req.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot write another user's addresses"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if req.IsDefault {
		if err := h.repo.ClearDefault(ctx, userID); err != nil {
			logging.From(c).Error("clear default failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
	}

	addr := domain.Address{
		ID:        uuid.NewString(),
		UserID:    userID,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		IsDefault: req.IsDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(ctx, &addr); err != nil {
		logging.From(c).Error("address create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, toAddressResp(addr))
}

// Update handles PUT /api/addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil || existing.Empty() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	if existing.UserID != middleware.UserOf(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your address"})
		return
	}

	if req.IsDefault && !existing.IsDefault {
		if err := h.repo.ClearDefault(ctx, existing.UserID); err != nil {
			logging.From(c).Error("clear default failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
	}

	existing.Street = req.Street
	existing.City = req.City
	existing.State = req.State
	existing.Zip = req.Zip
	existing.IsDefault = req.IsDefault
	if err := h.repo.Update(ctx, &existing); err != nil {
		logging.From(c).Error("address update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toAddressResp(existing))
}

// Delete handles DELETE /api/addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil || existing.Empty() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	if existing.UserID != middleware.UserOf(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your address"})
		return
	}
	if err := h.repo.Delete(ctx, existing.ID); err != nil {
		logging.From(c).Error("address delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.Status(http.StatusNoContent)
}
