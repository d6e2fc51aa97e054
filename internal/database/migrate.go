package database

import (
	"leadroll/internal/models"
	"leadroll/pkg/logger"
)

// Migrate runs schema migration for all models
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Lead{},
		&models.RentRollRecord{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
