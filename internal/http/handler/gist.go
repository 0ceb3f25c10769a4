package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cursorcontext/architect/core/config"
	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/http/dto"
	"github.com/cursorcontext/architect/internal/service"
)

type GistHandler struct {
	gist   service.GistService
	github config.GitHubConfig
}

func NewGistHandler(gist service.GistService, github config.GitHubConfig) *GistHandler {
	return &GistHandler{gist: gist, github: github}
}

// Create handles POST /api/gist. This endpoint is not streaming, so
// upstream failures become a synchronous response mirroring GitHub's status
// and message.
func (h *GistHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required."})
		return
	}

	if !h.github.Enabled() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GITHUB_TOKEN is not configured on the server."})
		return
	}

	url, err := h.gist.Share(ctx, content, strings.TrimSpace(req.RepoName))
	if err != nil {
		var apiErr *gitsource.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
			return
		}
		slog.ErrorContext(ctx, "gist creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create gist"})
		return
	}

	c.JSON(http.StatusOK, dto.GistResponse{URL: url})
}
