package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
	"github.com/mauzoapp/mauzo_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route carries the acting-user attribution header
	v1 := r.Group("/api/v1", middleware.ActingUserMiddleware())

	// Shop-scoped creation and listing routes nest under the shop;
	// item-scoped operations address records by their own IDs.
	shops := v1.Group("/shops/:shopID")

	registerProductRoutes(shops, v1, services.Inventory)
	registerCustomerRoutes(shops, v1, services.Customer)
	registerSaleRoutes(shops, v1, services.Sale)
	registerPurchaseOrderRoutes(shops, v1, services.PurchaseOrder)
	registerSavingsRoutes(shops, v1, services.Savings)
	registerSyncRoutes(v1, services.Sync)
}
