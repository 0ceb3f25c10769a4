package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cursorcontext/architect/internal/http/dto"
	"github.com/cursorcontext/architect/internal/trending"
)

// trendingReader exposes the ranked snapshot.
type trendingReader interface {
	Top(ctx context.Context) []trending.Entry
}

type TrendingHandler struct {
	tracker trendingReader
}

func NewTrendingHandler(tracker trendingReader) *TrendingHandler {
	return &TrendingHandler{tracker: tracker}
}

// List handles GET /api/trending. Always 200; an unavailable counter store
// just yields an empty list.
func (h *TrendingHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TrendingResponse{
		Trending: h.tracker.Top(c.Request.Context()),
	})
}
