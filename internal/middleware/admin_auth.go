package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminAuth guards operator endpoints with a shared secret passed in the
// X-Admin-Token header or the token query parameter. With no token
// configured every request is refused.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, types.BaseResponse{Error: "admin endpoints are disabled"})
			return
		}
		got := c.GetHeader(AdminTokenHeader)
		if got == "" {
			got = c.Query("token")
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			utils.Zlog.Warn("Rejected admin request",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.BaseResponse{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}
