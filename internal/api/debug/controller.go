package debug

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	svc         *Service
	defaultSlug string
}

func NewController(svc *Service, defaultSlug string) *Controller {
	return &Controller{svc: svc, defaultSlug: defaultSlug}
}

func (c *Controller) Inspect(ctx *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(ctx.Query("slug")))
	if slug == "" {
		slug = c.defaultSlug
	}
	ctx.JSON(http.StatusOK, c.svc.Inspect(ctx.Request.Context(), slug))
}
