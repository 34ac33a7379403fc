package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// Version is overridden at build time with -ldflags "-X ...controllers.Version=...".
var Version = "dev"

type HealthController struct {
	store       loaders.Store
	service     string
	environment string
}

func NewHealthController(store loaders.Store, service, environment string) *HealthController {
	return &HealthController{store: store, service: service, environment: environment}
}

// Liveness godoc
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"status":      "alive",
		"service":     h.service,
		"environment": h.environment,
		"version":     Version,
		"timestamp":   time.Now().UTC(),
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Check if the record store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health/ready [get]
func (h *HealthController) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.Zlog.Error("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ok":        false,
			"status":    "not ready",
			"store":     "down",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"status":    "ready",
		"store":     "up",
		"timestamp": time.Now().UTC(),
	})
}
