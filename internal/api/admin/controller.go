package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/faqsync"
	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// Syncer is the part of faqsync.Syncer the admin API drives.
type Syncer interface {
	Sync(ctx context.Context, force bool) (faqsync.Report, error)
}

type SyncResponse struct {
	types.BaseResponse
	Report faqsync.Report `json:"report"`
}

type SearchResponse struct {
	types.BaseResponse
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
}

type Controller struct {
	syncer Syncer
	index  search.Index
}

func NewController(syncer Syncer, index search.Index) *Controller {
	return &Controller{syncer: syncer, index: index}
}

// Sync rebuilds the FAQ search index. ?force=true skips the change and debounce checks.
func (c *Controller) Sync(ctx *gin.Context) {
	if c.syncer == nil {
		ctx.JSON(http.StatusServiceUnavailable, types.BaseResponse{Error: "search index is not configured"})
		return
	}
	force, _ := strconv.ParseBool(ctx.Query("force"))

	report, err := c.syncer.Sync(ctx.Request.Context(), force)
	if err != nil {
		utils.Zlog.Error("Manual FAQ sync failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, SyncResponse{
			BaseResponse: types.BaseResponse{Error: err.Error()},
			Report:       report,
		})
		return
	}
	ctx.JSON(http.StatusOK, SyncResponse{BaseResponse: types.BaseResponse{OK: true}, Report: report})
}

// Search is a raw probe of the FAQ index.
func (c *Controller) Search(ctx *gin.Context) {
	if c.index == nil {
		ctx.JSON(http.StatusServiceUnavailable, types.BaseResponse{Error: "search index is not configured"})
		return
	}
	q := ctx.Query("q")
	if q == "" {
		ctx.JSON(http.StatusBadRequest, types.BaseResponse{Error: "missing q"})
		return
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "5"))
	if err != nil || size < 1 || size > 50 {
		size = 5
	}

	hits, err := c.index.Search(ctx.Request.Context(), q, size)
	if err != nil {
		utils.Zlog.Error("FAQ index probe failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, types.BaseResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, SearchResponse{BaseResponse: types.BaseResponse{OK: true}, Query: q, Hits: hits})
}
