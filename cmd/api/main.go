package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cvscreen/dreamteam/internal/config"
	"cvscreen/dreamteam/internal/handlers"
	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	log := logger.Log
	log.Info("✅ Config loaded successfully")

	store, err := services.OpenDocumentStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize document store: %v", err)
	}
	log.WithField("backend", cfg.Storage.Backend).Info("✅ Document store initialized")

	// Without a client the evaluators answer every request with an
	// evaluation error; uploads and listing keep working.
	ctx := context.Background()
	llmClient, err := services.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		log.WithError(err).Warn("⚠️ LLM client unavailable, evaluations will fail")
		llmClient = nil
	} else {
		log.WithField("provider", llmClient.Name()).Info("✅ LLM client initialized")
	}

	pdfParser := services.NewPDFParserService(store)
	evaluator := services.NewEvaluatorService(llmClient)
	matcher := services.NewMatcherService(llmClient)
	ranker := services.NewRankerService(
		store,
		pdfParser,
		evaluator,
		matcher,
		services.NewWorker(cfg.Ranking.Concurrency),
	)
	log.Info("✅ Services initialized successfully")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	services.RegisterMetrics(registry)

	app := fiber.New(fiber.Config{
		AppName:      "Dream Team CV Screening API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		// A batch upload carries several files of up to MaxFileSize each.
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
			"llm":    llmClient != nil,
		})
	})

	handlers.RegisterRoutes(api, handlers.Handlers{
		Upload:    handlers.NewUploadHandler(store, cfg.Storage.MaxFileSize),
		Documents: handlers.NewDocumentHandler(store),
		Evaluate:  handlers.NewEvaluationHandler(pdfParser, evaluator),
		Rank:      handlers.NewRankHandler(ranker),
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Dream Team CV Screening API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"GET /api/v1/documents",
				"DELETE /api/v1/documents",
				"DELETE /api/v1/documents/:filename",
				"POST /api/v1/evaluate",
				"POST /api/v1/rank",
				"GET /api/v1/health",
				"GET /metrics",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
