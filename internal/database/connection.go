package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"order_report/internal/logger"
	"order_report/internal/models"
)

// Tables lists the gorm models of the five reference tables.
func Tables() []any {
	return []any{
		&models.Customer{},
		&models.Product{},
		&models.ShippingZone{},
		&models.Promotion{},
		&models.Order{},
	}
}

func Initialize(databaseURL string, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Configure GORM
	config := &gorm.Config{
		Logger: NewGormLogger(log),
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(Tables()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database connected and migrated")
	return db, nil
}

// NewGormLogger routes gorm warnings and errors through zap.
func NewGormLogger(log *zap.Logger) gormlogger.Interface {
	return gormlogger.New(logger.NewPrintfAdapter(log), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
