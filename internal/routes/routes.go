package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Conversly/autoskola-bot/internal/api/admin"
	"github.com/Conversly/autoskola-bot/internal/api/ask"
	"github.com/Conversly/autoskola-bot/internal/api/debug"
	"github.com/Conversly/autoskola-bot/internal/config"
	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/middleware"
	"github.com/Conversly/autoskola-bot/internal/search"
)

// Deps are the wired components the HTTP layer serves.
type Deps struct {
	Store  loaders.Store
	Ask    *ask.Service
	Syncer admin.Syncer // nil when the search index is off
	Index  search.Index // nil when the search index is off
}

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, deps Deps, cfg *config.Config) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins...))
	router.Use(middleware.RequestID())

	// Setup route groups
	SetupHealthRoutes(router, deps.Store, cfg)
	SetupMetricsRoutes(router)
	ask.RegisterRoutes(router, deps.Ask, cfg.DefaultSlug)
	debug.RegisterRoutes(router, debug.NewService(deps.Store, cfg.FAQScope == config.FAQScopeTenant), cfg.DefaultSlug)
	admin.RegisterRoutes(router, deps.Syncer, deps.Index, cfg.AdminToken)
	Setup404Handler(router)
}
