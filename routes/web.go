package routes

import (
	"github.com/flowers-delivery/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes sets up the service index
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Flower delivery cost service",
			"version": controllers.Version,
			"endpoints": map[string]string{
				"quote":   "POST /v1/delivery/quote",
				"orders":  "POST /v1/delivery/orders",
				"reverse": "GET /v1/delivery/reverse?lat=&lon=",
				"tariffs": "GET /v1/admin/tariffs",
				"health":  "GET /health",
			},
		})
	})
}
