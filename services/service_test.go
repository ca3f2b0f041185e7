package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/progprogect/NutritionBot/config"
	"github.com/progprogect/NutritionBot/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// each pooled connection gets its own in-memory database, so keep one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, tgID string) *models.User {
	t.Helper()
	user := models.User{TgID: tgID}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedEntry(t *testing.T, db *gorm.DB, userID uint, consumedAt time.Time, slot models.MealSlot, items ...models.FoodItem) *models.FoodEntry {
	t.Helper()
	entry := models.FoodEntry{
		UserID:     userID,
		ConsumedAt: consumedAt,
		RawText:    "test entry",
		MealSlot:   slot,
	}
	require.NoError(t, db.Create(&entry).Error)
	for i := range items {
		items[i].EntryID = entry.ID
	}
	if len(items) > 0 {
		require.NoError(t, db.Create(&items).Error)
	}
	entry.Items = items
	return &entry
}

func oatmealItem() models.FoodItem {
	// 60g of oatmeal at 380/13/7/67/10 per 100g.
	return models.FoodItem{
		Name:          "oatmeal",
		Qty:           60,
		Unit:          "g",
		ResolvedGrams: 60,
		Kcal:          228.0,
		Protein:       7.8,
		Fat:           4.2,
		Carbs:         40.2,
		Fiber:         6.0,
	}
}

func fptr(v float64) *float64 { return &v }

var testLoc = time.UTC
