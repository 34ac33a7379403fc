package ask

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, svc *Service, defaultSlug string) {
	ctrl := NewController(svc, defaultSlug)
	api := router.Group("/api")
	api.GET("/ask", ctrl.Ask)
	api.POST("/ask", ctrl.Ask)
}
