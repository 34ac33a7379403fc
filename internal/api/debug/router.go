package debug

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, svc *Service, defaultSlug string) {
	ctrl := NewController(svc, defaultSlug)
	router.GET("/api/debug", ctrl.Inspect)
}
