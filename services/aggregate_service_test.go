package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progprogect/NutritionBot/models"
)

func TestDayTotalsSumsItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewAggregateService(db, testLoc)
	user := seedUser(t, db, "1")

	banana := models.FoodItem{Name: "banana", Qty: 1, Unit: "piece", ResolvedGrams: 100,
		Kcal: 100.0, Protein: 2.0, Fat: 1.0, Carbs: 20.0, Fiber: 1.5}
	seedEntry(t, db, user.ID, testNow, models.SlotBreakfast, oatmealItem())
	seedEntry(t, db, user.ID, testNow.Add(4*time.Hour), models.SlotUnset, banana)

	report, err := svc.DayTotals(user.ID, DayOf(testNow, testLoc))
	require.NoError(t, err)

	assert.Equal(t, Macros{Kcal: 328.0, Protein: 9.8, Fat: 5.2, Carbs: 60.2, Fiber: 7.5}, report.Total)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "oatmeal", report.Items[0].Name)
	assert.Equal(t, "banana", report.Items[1].Name)

	// unslotted entries keep their own bucket
	assert.Equal(t, 228.0, report.Slots[models.SlotBreakfast].Kcal)
	assert.Equal(t, 100.0, report.Slots[models.SlotUnset].Kcal)
}

func TestDayTotalsNoData(t *testing.T) {
	db := newTestDB(t)
	svc := NewAggregateService(db, testLoc)
	user := seedUser(t, db, "1")

	_, err := svc.DayTotals(user.ID, DayOf(testNow, testLoc))
	assert.ErrorIs(t, err, ErrNoData)

	// an entry whose extraction failed has no items and counts as no data
	seedEntry(t, db, user.ID, testNow, models.SlotUnset)
	_, err = svc.DayTotals(user.ID, DayOf(testNow, testLoc))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDayTotalsExcludesOtherDays(t *testing.T) {
	db := newTestDB(t)
	svc := NewAggregateService(db, testLoc)
	user := seedUser(t, db, "1")

	seedEntry(t, db, user.ID, testNow, models.SlotUnset, oatmealItem())
	seedEntry(t, db, user.ID, testNow.AddDate(0, 0, -1), models.SlotUnset, oatmealItem())

	report, err := svc.DayTotals(user.ID, DayOf(testNow, testLoc))
	require.NoError(t, err)
	assert.Len(t, report.Items, 1)
	assert.Equal(t, 228.0, report.Total.Kcal)
}

func TestRangeDailyTotals(t *testing.T) {
	db := newTestDB(t)
	svc := NewAggregateService(db, testLoc)
	user := seedUser(t, db, "1")

	// two entries on one day, one on the next
	seedEntry(t, db, user.ID, testNow.AddDate(0, 0, -2), models.SlotUnset, oatmealItem())
	seedEntry(t, db, user.ID, testNow.AddDate(0, 0, -2).Add(time.Hour), models.SlotUnset, oatmealItem())
	seedEntry(t, db, user.ID, testNow.AddDate(0, 0, -1), models.SlotUnset, oatmealItem())

	from := dayStart(testNow.AddDate(0, 0, -7), testLoc)
	to := dayStart(testNow, testLoc)
	totals, err := svc.RangeDailyTotals(user.ID, from, to)
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.True(t, totals[0].Day.Before(totals[1].Day))
	assert.Equal(t, 456.0, totals[0].Macros.Kcal)
	assert.Equal(t, 228.0, totals[1].Macros.Kcal)
}

func TestRangeDailyTotalsEmptyRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAggregateService(db, testLoc)
	user := seedUser(t, db, "1")

	totals, err := svc.RangeDailyTotals(user.ID, testNow.AddDate(0, 0, -7), testNow)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
