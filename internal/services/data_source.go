package services

import (
	"fmt"

	"go.uber.org/zap"

	"order_report/internal/config"
	"order_report/internal/database"
	"order_report/internal/loader"
	"order_report/internal/repository"
)

// OpenDataSource returns the source named by cfg.DataSource and a function
// releasing it.
func OpenDataSource(cfg *config.Config, log *zap.Logger) (DataSource, func(), error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		return loader.NewCSVSource(cfg.DataDir), func() {}, nil
	case config.SourcePostgres:
		db, err := database.Initialize(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		return repository.NewDatasetRepository(db), func() { sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
