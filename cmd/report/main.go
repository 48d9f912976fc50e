package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"order_report/internal/config"
	"order_report/internal/logger"
	"order_report/internal/output"
	"order_report/internal/pricing"
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

	if err := run(ctx, cfg, log); err != nil {
		log.Error("report run failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	source, closeSource, err := services.OpenDataSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	reportService := services.NewReportService(source, pricing.NewEngine(cfg.PricingRules()), nil, 0, log)
	rep, err := reportService.Generate(ctx)
	if err != nil {
		return err
	}

	if err := output.NewWriter(os.Stdout, cfg.ReportPath, cfg.OutputPath).Write(rep); err != nil {
		return err
	}
	log.Info("report written", zap.String("output_path", cfg.OutputPath), zap.String("report_path", cfg.ReportPath))
	return nil
}
