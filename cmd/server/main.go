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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accessgate/internal/cancel"
	"accessgate/internal/config"
	"accessgate/internal/detect"
	"accessgate/internal/handler"
	"accessgate/internal/infrastructure/database"
	"accessgate/internal/logger"
	"accessgate/internal/metrics"
	"accessgate/internal/middleware"
	"accessgate/internal/processor"
	"accessgate/internal/queue"
	"accessgate/internal/realtime"
	"accessgate/internal/repository"
	"accessgate/internal/service"
	"accessgate/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)

	poolCfg := database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}

	// Apply schema migrations before serving traffic
	if err := database.Migrate(poolCfg.URL()); err != nil {
		logger.Fatal("Failed to apply migrations",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	recordStore := repository.NewPostgresRecordStore(pool)
	historyRepo := repository.NewPostgresHistoryRepository(pool)

	// Initialize the pipeline
	v := validator.NewValidator()
	detector := detect.NewDetector()
	hub := realtime.NewHub()
	registry := cancel.NewRegistry()
	proc := processor.New(recordStore, v, detector, hub, cfg.PublishEveryRows)
	queueService := queue.NewService(proc, historyRepo, hub, registry)
	uploadService := service.NewUploadService(proc, historyRepo, hub, registry, queueService)

	// Initialize handlers
	uploadHandler := handler.NewUploadHandler(uploadService)
	queueHandler := handler.NewQueueHandler(uploadService, queueService)
	templateHandler := handler.NewTemplateHandler(detector)
	progressHandler := handler.NewProgressHandler(hub)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	bulk := router.Group("/bulk-upload")
	{
		// The progress channel carries no user content and stays open across
		// uploads, so it sits outside the identity check.
		bulk.GET("/progress/ws", progressHandler.Connect)

		authed := bulk.Group("", middleware.CurrentUser())
		{
			authed.POST("/core/upload", uploadHandler.Upload)
			authed.POST("/multiple/upload-multiple", uploadHandler.UploadMultiple)
			authed.POST("/progress/upload-with-progress", uploadHandler.UploadWithProgress)
			authed.POST("/cancellation/cancel/:jobId", uploadHandler.CancelProcessing)
			authed.GET("/history", uploadHandler.History)

			authed.POST("/queue/upload", queueHandler.Upload)
			authed.GET("/queue/status/:jobId", queueHandler.Status)
			authed.POST("/queue/cancel/:jobId", queueHandler.Cancel)

			authed.GET("/templates/supported", templateHandler.Supported)
			authed.GET("/templates/:tableType", templateHandler.Template)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Shutdown HTTP server
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
