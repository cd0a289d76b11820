package migration

import (
	"Food-Quality-Registry/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.FoodProduct{}); err != nil {
		return fmt.Errorf("error migrating food product database: %w", err)
	}
	return nil
}
