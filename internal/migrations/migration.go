package migrations

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"order_report/internal/database"
)

// Reset drops and recreates the reference tables.
func Reset(db *gorm.DB, log *zap.Logger) error {
	log.Info("dropping existing tables")
	if err := db.Migrator().DropTable(database.Tables()...); err != nil {
		log.Warn("failed to drop tables", zap.Error(err))
	}

	log.Info("creating tables")
	if err := db.AutoMigrate(database.Tables()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
