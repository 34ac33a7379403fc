package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/Conversly/autoskola-bot/internal/middleware"
	"github.com/Conversly/autoskola-bot/internal/search"
)

func RegisterRoutes(router *gin.Engine, syncer Syncer, index search.Index, token string) {
	ctrl := NewController(syncer, index)
	admin := router.Group("/api/admin", middleware.AdminAuth(token))
	admin.POST("/faq-sync", ctrl.Sync)
	admin.GET("/search", ctrl.Search)
}
