package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type MenuHandler struct {
	menu  usecase.MenuRepo
	cache usecase.MenuCache // optional
}

func NewMenuHandler(menu usecase.MenuRepo, cache usecase.MenuCache) *MenuHandler {
	return &MenuHandler{menu: menu, cache: cache}
}

// List handles GET /api/menu. The serialized listing is cached whole;
// inventory edits invalidate it.
func (h *MenuHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if h.cache != nil {
		if payload, ok, err := h.cache.Get(ctx); err == nil && ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	items, err := h.menu.List(ctx)
	if err != nil {
		logging.From(c).Error("menu listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	payload, err := json.Marshal(toMenuItemResps(items))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, payload); err != nil {
			logging.From(c).Warn("menu cache write failed", "error", err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
