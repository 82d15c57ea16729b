package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopping-assistant/config"
	_ "shopping-assistant/docs" // Swagger docs
	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/agent/orchestrator"
	"shopping-assistant/internal/agent/tools"
	"shopping-assistant/internal/backend"
	chatHTTP "shopping-assistant/internal/chat/delivery/http"
	"shopping-assistant/internal/httpserver"
	"shopping-assistant/internal/middleware"
	"shopping-assistant/internal/session"
	"shopping-assistant/pkg/llmprovider"
	"shopping-assistant/pkg/log"
)

// @title       Shopping Assistant API
// @description Conversational shopping assistant: LLM tool loop over a product/cart backend with in-memory sessions.
// @version     1
// @host        localhost:8000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Shopping Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Backend URL: %s", cfg.Backend.URL)

	// 3. Backend client (retry + circuit breaker policy from config)
	backendClient := backend.NewClient(cfg.Backend.URL, backend.Policy{
		Timeout:           cfg.Backend.Timeout,
		MaxAttempts:       cfg.Backend.MaxAttempts,
		RetryBaseDelay:    cfg.Backend.RetryBaseDelay,
		BackoffMultiplier: cfg.Backend.BackoffMultiplier,
		BreakerThreshold:  cfg.Backend.BreakerThreshold,
		BreakerCooldown:   cfg.Backend.BreakerCooldown,
	}, logger)

	// 4. Session store + background expiration sweep
	store := session.NewStore(cfg.Session.IdleTTL, cfg.Session.MaxTurns, logger)
	store.StartSweeper(ctx, cfg.Session.SweepInterval)

	// 5. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotalTimeout, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM manager ready with %d provider(s)", len(providers))

	// 6. Tool registry
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewProductSearchTool(backendClient))
	registry.Register(tools.NewProductDetailsTool(backendClient))
	registry.Register(tools.NewCartManagementTool(backendClient))
	registry.Register(tools.NewCartSummaryTool(backendClient))
	logger.Infof(ctx, "Registered %d agent tools", len(registry.List()))

	// 7. Orchestrator
	orch := orchestrator.New(llm, registry, store, logger, orchestrator.Config{
		MaxIterations: cfg.Chat.MaxIterations,
		HistoryWindow: cfg.Chat.HistoryWindow,
	})

	// 8. Delivery
	mw := middleware.New(logger, cfg.Chat.RateLimitPerMin)
	chatHandler := chatHTTP.New(logger, orch, store, cfg.Chat.RequestTimeout)

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
		Middleware:  mw,
		Store:       store,
		Backend:     backendClient,
		LLM:         llm,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
