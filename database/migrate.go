package database

import (
	"fmt"

	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/utils"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	}
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
