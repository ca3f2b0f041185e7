package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progprogect/NutritionBot/models"
)

func TestRescaleDoublesEverything(t *testing.T) {
	db := newTestDB(t)
	svc := NewCorrectionService(db)
	user := seedUser(t, db, "1")
	entry := seedEntry(t, db, user.ID, testNow, models.SlotUnset, oatmealItem())

	item, err := svc.Rescale(entry.Items[0].ID, 120)
	require.NoError(t, err)

	assert.Equal(t, 120.0, item.ResolvedGrams)
	assert.Equal(t, 456.0, item.Kcal)
	assert.Equal(t, 15.6, item.Protein)
	assert.Equal(t, 8.4, item.Fat)
	assert.Equal(t, 80.4, item.Carbs)
	assert.Equal(t, 12.0, item.Fiber)
	assert.True(t, item.ManuallyEdited)
}

func TestRescaleRoundTripRestores(t *testing.T) {
	db := newTestDB(t)
	svc := NewCorrectionService(db)
	user := seedUser(t, db, "1")
	entry := seedEntry(t, db, user.ID, testNow, models.SlotUnset, oatmealItem())
	id := entry.Items[0].ID

	_, err := svc.Rescale(id, 120)
	require.NoError(t, err)
	item, err := svc.Rescale(id, 60)
	require.NoError(t, err)

	assert.Equal(t, 228.0, item.Kcal)
	assert.Equal(t, 7.8, item.Protein)
	assert.Equal(t, 4.2, item.Fat)
	assert.Equal(t, 40.2, item.Carbs)
	assert.Equal(t, 6.0, item.Fiber)
}

func TestRescaleRejectsNonPositiveGrams(t *testing.T) {
	db := newTestDB(t)
	svc := NewCorrectionService(db)
	user := seedUser(t, db, "1")
	entry := seedEntry(t, db, user.ID, testNow, models.SlotUnset, oatmealItem())

	_, err := svc.Rescale(entry.Items[0].ID, 0)
	assert.ErrorIs(t, err, ErrInvalidGrams)
	_, err = svc.Rescale(entry.Items[0].ID, -50)
	assert.ErrorIs(t, err, ErrInvalidGrams)
}

func TestRescaleZeroBaseline(t *testing.T) {
	db := newTestDB(t)
	svc := NewCorrectionService(db)
	user := seedUser(t, db, "1")
	broken := models.FoodItem{Name: "mystery", ResolvedGrams: 0}
	entry := seedEntry(t, db, user.ID, testNow, models.SlotUnset, broken)

	_, err := svc.Rescale(entry.Items[0].ID, 100)
	assert.ErrorIs(t, err, ErrZeroBaseline)
}

func TestRescaleUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCorrectionService(db)

	_, err := svc.Rescale(9999, 100)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
