// Package routes wires the HTTP surface of the delivery service.
//
// - api.go: /v1 delivery and admin routes, health checks
// - web.go: service index
// - middleware.go: request IDs and access logging
package routes

import (
	"github.com/flowers-delivery/app/controllers"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAllRoutes sets up middleware and every route group
func SetupAllRoutes(router *gin.Engine, deliveryController *controllers.DeliveryController, adminController *controllers.AdminController, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))

	SetupWebRoutes(router)
	SetupHealthRoutes(router, deliveryController)
	SetupAPIRoutes(router, deliveryController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
