package bootstrap

import (
	"time"

	"ai-promptcraft-be/internal/config"
	"ai-promptcraft-be/internal/controller"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/internal/service"
	"ai-promptcraft-be/pkg/llm/openai"
	"ai-promptcraft-be/pkg/llm/resilient"
	"ai-promptcraft-be/pkg/normalizer"
	"ai-promptcraft-be/pkg/search"
	"ai-promptcraft-be/pkg/search/serpapi"
	"ai-promptcraft-be/pkg/tokens"
)

type Container struct {
	// Controllers
	RewriteController controller.IRewriteController

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Outbound clients
	llmProvider := openai.NewOpenAIProvider(
		cfg.Llm.BaseURL,
		cfg.Keys.OpenAI,
		cfg.Llm.Model,
		time.Duration(cfg.Llm.TimeoutSeconds)*time.Second,
	)
	invoker := resilient.NewInvoker(llmProvider, sysLogger)

	searchTimeout := time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	searchClient := serpapi.NewClient(cfg.Keys.SerpAPI, cfg.Search.Locale, searchTimeout)
	augmenter := search.NewAugmenter(searchClient, cfg.Keys.SerpAPI, cfg.Search.ResultCount, searchTimeout, sysLogger)

	// 3. Pipeline pieces
	estimator := tokens.NewEstimator(sysLogger)
	norm := normalizer.New()

	// 4. Services
	rewriteService := service.NewRewriteService(cfg, invoker, augmenter, estimator, norm, sysLogger)

	// 5. Controllers
	rewriteController := controller.NewRewriteController(rewriteService)

	return &Container{
		RewriteController: rewriteController,
		Logger:            sysLogger,
	}
}
