package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Conversly/autoskola-bot/internal/config"
	"github.com/Conversly/autoskola-bot/internal/controllers"
	"github.com/Conversly/autoskola-bot/internal/loaders"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, store loaders.Store, cfg *config.Config) {
	healthController := controllers.NewHealthController(store, cfg.ServiceName, cfg.Environment)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/api/health", healthController.Liveness)
	router.GET("/api/health/ready", healthController.Readiness)
}

// SetupMetricsRoutes exposes Prometheus metrics
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
