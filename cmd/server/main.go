package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"order_report/internal/config"
	"order_report/internal/handlers"
	"order_report/internal/logger"
	"order_report/internal/pricing"
	"order_report/internal/redis"
	"order_report/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize data source
	source, closeSource, err := services.OpenDataSource(cfg, log)
	if err != nil {
		log.Fatal("failed to open data source", zap.Error(err))
	}
	defer closeSource()

	// Initialize Redis when configured
	var cache services.ReportCache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.Initialize(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cache = redisClient
	}

	// Initialize services and handlers
	reportService := services.NewReportService(source, pricing.NewEngine(cfg.PricingRules()), cache, cfg.CacheDuration(), log)
	reportHandler := handlers.NewReportHandler(reportService, log)

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery())
	reportHandler.Register(router)
	if redisClient != nil {
		handlers.NewAPIHandler(redisClient).Register(router)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	// Start server
	log.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("data_source", cfg.DataSource))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
