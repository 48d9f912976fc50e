package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"order_report/internal/models"
	"order_report/internal/pricing"
	"order_report/internal/redis"
	"order_report/internal/report"
)

// DataSource loads the reference tables of one run.
type DataSource interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// ReportCache stores the last computed report.
type ReportCache interface {
	GetReport(ctx context.Context) (*report.Report, error)
	SetReport(ctx context.Context, rep *report.Report, ttl time.Duration) error
}

type ReportService interface {
	// Generate always loads and prices the dataset.
	Generate(ctx context.Context) (*report.Report, error)
	// Report serves the cached report when one is available.
	Report(ctx context.Context) (*report.Report, error)
}

type reportService struct {
	source   DataSource
	engine   pricing.Engine
	cache    ReportCache
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewReportService builds the service. cache may be nil.
func NewReportService(source DataSource, engine pricing.Engine, cache ReportCache, cacheTTL time.Duration, log *zap.Logger) ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &reportService{source: source, engine: engine, cache: cache, cacheTTL: cacheTTL, log: log}
}

func (s *reportService) Generate(ctx context.Context) (*report.Report, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	s.log.Info("dataset loaded",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("products", len(ds.Products)),
		zap.Int("shipping_zones", len(ds.ShippingZones)),
		zap.Int("promotions", len(ds.Promotions)),
		zap.Int("orders", len(ds.Orders)),
	)

	rep, err := report.Build(ds, s.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	s.log.Info("report built",
		zap.Int("customers_priced", len(rep.Customers)),
		zap.Float64("grand_total", rep.GrandTotal),
		zap.Float64("total_tax_collected", rep.TotalTaxCollected),
	)
	return rep, nil
}

func (s *reportService) Report(ctx context.Context) (*report.Report, error) {
	if s.cache == nil {
		return s.Generate(ctx)
	}

	rep, err := s.cache.GetReport(ctx)
	switch {
	case err == nil:
		return rep, nil
	case errors.Is(err, redis.ErrCacheMiss):
		s.log.Debug("report cache miss")
	default:
		s.log.Warn("report cache read failed", zap.Error(err))
	}

	rep, err = s.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetReport(ctx, rep, s.cacheTTL); err != nil {
		s.log.Warn("report cache write failed", zap.Error(err))
	}
	return rep, nil
}
