package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditH "github.com/veltra/pos-admin-service/internal/audit/handler"
	"github.com/veltra/pos-admin-service/internal/auth"
	authH "github.com/veltra/pos-admin-service/internal/auth/handler"
	invH "github.com/veltra/pos-admin-service/internal/inventory/handler"
	prodH "github.com/veltra/pos-admin-service/internal/product/handler"
	"github.com/veltra/pos-admin-service/internal/requestid"
	saleH "github.com/veltra/pos-admin-service/internal/sale/handler"
	whH "github.com/veltra/pos-admin-service/internal/warehouse/handler"
)

type Handlers struct {
	Auth      *authH.AuthHandler
	Product   *prodH.ProductHandler
	Inventory *invH.InventoryHandler
	Warehouse *whH.WarehouseHandler
	Sale      *saleH.SaleHandler
	Audit     *auditH.AuditHandler
}

// NewRouter wires every route behind its guard. Reads need a session,
// writes to products and warehouses need the admin role.
func NewRouter(guard *auth.Guard, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	authed := api.Group("", guard.RequireAuth())
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/products", h.Product.List)
		authed.GET("/products/search", h.Product.Search)
		authed.GET("/products/:id", h.Product.Get)

		authed.GET("/warehouses", h.Warehouse.List)
		authed.GET("/warehouses/:id", h.Warehouse.Get)

		authed.GET("/inventory", h.Inventory.Get)
		authed.GET("/inventory/list", h.Inventory.List)
		authed.GET("/inventory/movements", h.Inventory.ListMovements)
		authed.PUT("/inventory/quantity", h.Inventory.SetQuantity)
		authed.PUT("/inventory/sizes", h.Inventory.ReplaceSizes)
		authed.POST("/inventory/returns", h.Inventory.ReturnStock)

		authed.POST("/sales", h.Sale.Record)
		authed.GET("/sales/:id", h.Sale.Get)
	}

	admin := api.Group("", guard.RequireAdmin())
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/bulk-delete", h.Product.BulkDelete)

		admin.POST("/warehouses", h.Warehouse.Create)
		admin.PUT("/warehouses/:id", h.Warehouse.Update)
		admin.DELETE("/warehouses/:id", h.Warehouse.Delete)

		admin.GET("/audit-logs", h.Audit.List)
	}

	return r
}
