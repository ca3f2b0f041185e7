package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate is shared with tests, which run the same models on sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.FoodItem{},
		&models.UserGoal{},
		&models.CoachRequest{},
		&models.MetricsEvent{},
	)
	if err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
