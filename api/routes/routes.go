package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gasops/cylinder-backend/internal/config"
	"github.com/gasops/cylinder-backend/internal/handlers"
	"github.com/gasops/cylinder-backend/internal/middleware"
)

// HandlerDependencies carries the initialized handlers the router wires up
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	SettingsHandler *handlers.SettingsHandler
	PricingHandler  *handlers.PricingHandler
	OutletHandler   *handlers.OutletHandler
	CylinderHandler *handlers.CylinderHandler
	CustomerHandler *handlers.CustomerHandler
	LeaseHandler    *handlers.LeaseHandler
	StatsHandler    *handlers.StatsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Quotes are side-effect free and available without authentication
		public.POST("/pricing/quote", deps.PricingHandler.GetQuote)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		// Setting routes
		settings := protected.Group("/settings")
		{
			settings.GET("/resolve", deps.SettingsHandler.ResolveSetting)
			settings.GET("", deps.SettingsHandler.ListSettings)
			settings.GET("/:id", deps.SettingsHandler.GetSettingByID)
			settings.POST("", deps.SettingsHandler.SetSetting)
			settings.DELETE("/:id", deps.SettingsHandler.DeleteSetting)
			settings.GET("/category/:id", deps.SettingsHandler.ListSettingsByCategory)
		}

		// Setting category routes
		categories := protected.Group("/setting-categories")
		{
			categories.GET("", deps.SettingsHandler.ListCategories)
			categories.POST("", deps.SettingsHandler.CreateCategory)
		}

		// Pricing routes
		pricing := protected.Group("/pricing")
		{
			pricing.POST("/calculate", deps.PricingHandler.CalculatePrice)
			pricing.POST("/calculate-bulk", deps.PricingHandler.CalculateBulkPrice)
			pricing.GET("/projection", deps.PricingHandler.CalculateRevenueProjection)
		}

		// Outlet routes
		outlets := protected.Group("/outlets")
		{
			outlets.GET("", deps.OutletHandler.GetAllOutlets)
			outlets.GET("/:id", deps.OutletHandler.GetOutletByID)
			outlets.POST("", deps.OutletHandler.CreateOutlet)
			outlets.PUT("/:id", deps.OutletHandler.UpdateOutlet)
			outlets.DELETE("/:id", deps.OutletHandler.DeactivateOutlet)
		}

		// Cylinder routes
		cylinders := protected.Group("/cylinders")
		{
			cylinders.GET("/:id", deps.CylinderHandler.GetCylinderByID)
			cylinders.GET("/outlet/:id", deps.CylinderHandler.GetCylindersByOutlet)
			cylinders.GET("/status/:status", deps.CylinderHandler.GetCylindersByStatus)
			cylinders.POST("", deps.CylinderHandler.CreateCylinder)
			cylinders.PUT("/:id", deps.CylinderHandler.UpdateCylinder)
			cylinders.POST("/:id/transfer", deps.CylinderHandler.Transfer)
			cylinders.POST("/:id/refill", deps.CylinderHandler.Refill)
			cylinders.POST("/:id/swap", deps.CylinderHandler.Swap)
			cylinders.GET("/:id/operations", deps.CylinderHandler.GetOperations)
		}

		// Operation routes
		protected.GET("/operations/type/:type", deps.CylinderHandler.GetOperationsByType)

		protected.GET("/stats", deps.StatsHandler.Overview)

		// Customer routes
		customers := protected.Group("/customers")
		{
			customers.GET("", deps.CustomerHandler.GetAllCustomers)
			customers.GET("/:id", deps.CustomerHandler.GetCustomerByID)
			customers.POST("", deps.CustomerHandler.CreateCustomer)
			customers.PUT("/:id", deps.CustomerHandler.UpdateCustomer)
			customers.DELETE("/:id", deps.CustomerHandler.DeactivateCustomer)
		}

		// Lease routes
		leases := protected.Group("/leases")
		{
			leases.GET("/:id", deps.LeaseHandler.GetLeaseByID)
			leases.GET("/customer/:id", deps.LeaseHandler.GetLeasesByCustomer)
			leases.GET("/outlet/:id", deps.LeaseHandler.GetLeasesByOutlet)
			leases.GET("/status/:status", deps.LeaseHandler.GetLeasesByStatus)
			leases.POST("", deps.LeaseHandler.CreateLease)
			leases.POST("/:id/return", deps.LeaseHandler.ReturnLease)
		}
	}

	return router
}
