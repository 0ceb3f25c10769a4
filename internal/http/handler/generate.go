package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cursorcontext/architect/core/config"
	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/http/dto"
	"github.com/cursorcontext/architect/internal/relay"
	"github.com/cursorcontext/architect/internal/service"
)

type GenerateHandler struct {
	generator service.GeneratorService
	llm       config.LLMConfig
}

func NewGenerateHandler(generator service.GeneratorService, llm config.LLMConfig) *GenerateHandler {
	return &GenerateHandler{generator: generator, llm: llm}
}

// Generate handles POST /api/generate. Validation and configuration errors
// are synchronous JSON responses; once streaming starts, failures can only
// travel inside the stream payload because the headers are committed.
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if !h.llm.Enabled() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.llm.KeyVar() + " is not configured."})
		return
	}

	// Refine mode
	existingRules := strings.TrimSpace(req.ExistingRules)
	refinementPrompt := strings.TrimSpace(req.RefinementPrompt)
	if existingRules != "" && refinementPrompt != "" {
		h.stream(c, h.generator.Refine(ctx, existingRules, refinementPrompt))
		return
	}

	// Generate mode
	githubURL := strings.TrimSpace(req.GithubURL)
	manualStack := strings.TrimSpace(req.ManualStack)
	if githubURL == "" && manualStack == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either githubUrl or manualStack is required."})
		return
	}

	if manualStack != "" {
		h.stream(c, h.generator.FromStack(ctx, manualStack))
		return
	}

	id := gitsource.ParseURL(githubURL)
	if id == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GitHub URL."})
		return
	}
	h.stream(c, h.generator.FromRepo(ctx, *id))
}

// Raw handles GET /api/raw?repo=owner/repo, the curl-friendly variant:
//
//	curl -sL "https://<host>/api/raw?repo=shadcn-ui/ui" > .cursorrules
func (h *GenerateHandler) Raw(c *gin.Context) {
	id := gitsource.ParseReference(c.Query("repo"))
	if id == nil {
		c.String(http.StatusBadRequest,
			"Error: ?repo parameter is required (e.g. ?repo=owner/repo or a full GitHub URL)\n")
		return
	}

	if !h.llm.Enabled() {
		c.String(http.StatusInternalServerError,
			"Error: "+h.llm.KeyVar()+" is not configured on the server.\n")
		return
	}

	events := h.generator.FromRepo(c.Request.Context(), *id)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", `inline; filename=".cursorrules"`)
	c.Status(http.StatusOK)
	streamEvents(c, events)
}

func (h *GenerateHandler) stream(c *gin.Context, events <-chan relay.Event) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	streamEvents(c, events)
}
