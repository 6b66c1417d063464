package routes

import (
	"github.com/flowers-delivery/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up all API routes
func SetupAPIRoutes(router *gin.Engine, deliveryController *controllers.DeliveryController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		delivery := v1.Group("/delivery")
		{
			delivery.POST("/quote", deliveryController.Quote)
			delivery.POST("/orders", deliveryController.CreateOrder)
			delivery.GET("/reverse", deliveryController.Reverse)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/tariffs", adminController.ListTariffs)
			admin.POST("/tariffs/reload", adminController.ReloadTariffs)
			admin.POST("/tariffs/validate", adminController.ValidateTariffs)
			admin.GET("/tariffs/suggest", adminController.SuggestZones)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.GET("/stats", adminController.GetStats)
		}

		v1.GET("/health", deliveryController.HealthCheck)
	}
}

// SetupHealthRoutes sets up health check routes
func SetupHealthRoutes(router *gin.Engine, deliveryController *controllers.DeliveryController) {
	router.GET("/health", deliveryController.HealthCheck)
	router.GET("/ready", deliveryController.HealthCheck)
	router.GET("/live", deliveryController.HealthCheck)
}
