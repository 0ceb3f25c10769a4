package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cursorcontext/architect/common/llm"
	"github.com/cursorcontext/architect/common/logger"
	"github.com/cursorcontext/architect/common/otel"
	"github.com/cursorcontext/architect/core/config"
	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/http/middleware"
	httprouter "github.com/cursorcontext/architect/internal/http/router"
	"github.com/cursorcontext/architect/internal/promptctx"
	"github.com/cursorcontext/architect/internal/relay"
	"github.com/cursorcontext/architect/internal/service"
	"github.com/cursorcontext/architect/internal/trending"
)

const trendingSnapshotTTL = 60 * time.Second

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "architect starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	var streamer llm.Streamer
	if cfg.LLM.Enabled() {
		streamer, err = llm.NewStreamer(llm.Config{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "llm client ready", "provider", cfg.LLM.Provider, "model", streamer.Model())
	} else {
		slog.WarnContext(ctx, "no llm api key configured, generation endpoints will return 500",
			"expected_var", cfg.LLM.KeyVar())
	}

	redisClient := connectRedis(ctx, cfg)
	tracker := trending.NewTracker(redisClient, trendingSnapshotTTL)

	github := gitsource.NewClient(cfg.GitHub.Token)

	services := service.NewServices(service.ServicesConfig{
		Builder: promptctx.NewBuilder(github),
		Relay:   relay.New(streamer, cfg.Generation.Timeout, cfg.Generation.MaxTokens),
		Tracker: tracker,
		GitHub:  github,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.ErrorContext(shutdownCtx, "redis close error", "error", err)
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// connectRedis returns nil when Redis is unconfigured or misconfigured;
// trending then degrades to a no-op rather than failing requests.
func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if !cfg.Redis.Enabled() {
		slog.InfoContext(ctx, "redis not configured, trending disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.WarnContext(ctx, "invalid redis url, trending disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Keep the client: the connection pool recovers on its own and every
		// trending operation already swallows failures.
		slog.WarnContext(ctx, "redis ping failed", "error", err)
	} else {
		slog.InfoContext(ctx, "redis connected")
	}

	return client
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger
	// logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		LLM:    cfg.LLM,
		GitHub: cfg.GitHub,
	})

	return router
}
