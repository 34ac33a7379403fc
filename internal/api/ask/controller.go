package ask

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/llm"
	"github.com/Conversly/autoskola-bot/internal/middleware"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const SlugHeader = "X-School-Slug"

type Controller struct {
	svc         *Service
	defaultSlug string
}

func NewController(svc *Service, defaultSlug string) *Controller {
	return &Controller{svc: svc, defaultSlug: defaultSlug}
}

// Ask handles GET and POST /api/ask.
func (c *Controller) Ask(ctx *gin.Context) {
	start := time.Now()
	requestID := middleware.GetRequestID(ctx)

	defer func() {
		if r := recover(); r != nil {
			utils.Zlog.Error("Panic while answering",
				zap.String("request_id", requestID),
				zap.Any("panic", r))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, Response{
				BaseResponse: types.BaseResponse{Error: "internal error"},
				RequestID:    requestID,
			})
		}
	}()

	in, err := c.parse(ctx)
	if err != nil {
		utils.Zlog.Warn("invalid /api/ask request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, Response{
			BaseResponse: types.BaseResponse{Error: err.Error()},
			RequestID:    requestID,
		})
		return
	}

	res, err := c.svc.Ask(ctx.Request.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal error"
		if errors.Is(err, ErrMissingMessage) {
			status = http.StatusBadRequest
			msg = err.Error()
		}
		utils.Zlog.Error("Ask failed", zap.String("request_id", requestID), zap.Error(err))
		ctx.JSON(status, Response{BaseResponse: types.BaseResponse{Error: msg}, RequestID: requestID})
		return
	}

	utils.Zlog.Info("Answered",
		zap.String("request_id", requestID),
		zap.String("slug", in.Slug),
		zap.String("source", res.Source),
		zap.String("handler", res.Handler),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()))

	ctx.JSON(http.StatusOK, Response{
		BaseResponse: types.BaseResponse{OK: true},
		Reply:        res.Reply,
		Source:       res.Source,
		RequestID:    requestID,
	})
}

func (c *Controller) parse(ctx *gin.Context) (Input, error) {
	in := Input{Slug: c.resolveSlug(ctx)}

	if ctx.Request.Method == http.MethodGet {
		in.Message = ctx.Query("q")
		history, err := llm.ParseHistoryJSON(ctx.Query("history"))
		if err != nil {
			return in, err
		}
		in.History = history
	} else {
		var req Request
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return in, fmt.Errorf("invalid JSON body: %w", err)
		}
		in.Message = req.Text()
		in.History = llm.ParseHistory(req.History)
	}

	if strings.TrimSpace(in.Message) == "" {
		return in, ErrMissingMessage
	}
	return in, nil
}

// resolveSlug picks the tenant: query parameter, then header, then default.
func (c *Controller) resolveSlug(ctx *gin.Context) string {
	if s := strings.TrimSpace(ctx.Query("slug")); s != "" {
		return strings.ToLower(s)
	}
	if s := strings.TrimSpace(ctx.GetHeader(SlugHeader)); s != "" {
		return strings.ToLower(s)
	}
	return c.defaultSlug
}
