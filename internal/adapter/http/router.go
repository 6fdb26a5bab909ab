package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http/middleware"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
)

type Handlers struct {
	Auth    *AuthHandler
	Menu    *MenuHandler
	Orders  *OrderHandler
	Address *AddressHandler
	Admin   *AdminHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.Auth.Signup)
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/menu", h.Menu.List)

		authed := api.Group("", authz.Require())
		{
			authed.POST("/orders", h.Orders.PlaceOrder)
			authed.GET("/orders", h.Orders.History)
			authed.GET("/orders/:id", h.Orders.GetByID)

			authed.GET("/addresses", h.Address.List)
			authed.POST("/addresses", h.Address.Create)
			authed.PUT("/addresses/:id", h.Address.Update)
			authed.DELETE("/addresses/:id", h.Address.Delete)
		}

		admin := api.Group("/admin", authz.Require(), authz.RequireAdmin())
		{
			admin.GET("/orders", h.Admin.ListOrders)
			admin.PATCH("/orders", h.Admin.UpdateOrderStatus)
			admin.GET("/inventory", h.Admin.Inventory)
			admin.PUT("/inventory/:id", h.Admin.UpdateInventoryItem)
		}
	}

	return r
}
