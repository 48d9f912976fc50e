package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"order_report/internal/config"
	"order_report/internal/database"
	"order_report/internal/loader"
	"order_report/internal/logger"
	"order_report/internal/migrations"
	"order_report/internal/repository"
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

	ctx := context.Background()

	// Read the CSV tables to seed from
	ds, err := loader.NewCSVSource(cfg.DataDir).Load(ctx)
	if err != nil {
		log.Fatal("failed to load CSV data", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Force recreate all tables
	if err := migrations.Reset(db, log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := repository.NewDatasetRepository(db).Seed(ctx, ds); err != nil {
		log.Fatal("failed to seed database", zap.Error(err))
	}

	log.Info("database initialization completed",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("products", len(ds.Products)),
		zap.Int("shipping_zones", len(ds.ShippingZones)),
		zap.Int("promotions", len(ds.Promotions)),
		zap.Int("orders", len(ds.Orders)),
	)
}
