package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cursorcontext/architect/core/config"
	"github.com/cursorcontext/architect/internal/http/handler"
	"github.com/cursorcontext/architect/internal/service"
)

type RouterConfig struct {
	LLM    config.LLMConfig
	GitHub config.GitHubConfig
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		generateHandler := handler.NewGenerateHandler(services.Generator(), cfg.LLM)
		api.POST("/generate", generateHandler.Generate)
		api.GET("/raw", generateHandler.Raw)

		gistHandler := handler.NewGistHandler(services.Gist(), cfg.GitHub)
		api.POST("/gist", gistHandler.Create)

		trendingHandler := handler.NewTrendingHandler(services.Tracker())
		api.GET("/trending", trendingHandler.List)
	}
}
