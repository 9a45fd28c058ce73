package db

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migrations for the given models.
func AutoMigrate(database *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := database.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
