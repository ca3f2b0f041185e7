package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progprogect/NutritionBot/models"
	"gorm.io/gorm"
)

func newTrendService(t *testing.T) (*TrendService, *gorm.DB, *models.User) {
	t.Helper()
	db := newTestDB(t)
	agg := NewAggregateService(db, testLoc)
	svc := NewTrendService(agg, testLoc)
	return svc, db, seedUser(t, db, "1")
}

// seedDayKcal logs one synthetic item worth `kcal` on the given day.
func seedDayKcal(t *testing.T, db *gorm.DB, userID uint, day time.Time, kcal float64) {
	t.Helper()
	seedEntry(t, db, userID, day.Add(12*time.Hour), models.SlotUnset, models.FoodItem{
		Name: "meal", Qty: 1, Unit: "piece", ResolvedGrams: 100, Kcal: kcal,
	})
}

func TestWeeklyExcludesToday(t *testing.T) {
	svc, db, user := newTrendService(t)
	today := dayStart(testNow, testLoc)

	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -1), 2000)
	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -2), 1000)
	// today's food must not leak into the window
	seedDayKcal(t, db, user.ID, today, 5000)

	report, err := svc.Weekly(user.ID, testNow)
	require.NoError(t, err)

	require.Len(t, report.Days, 2)
	assert.Equal(t, 1500.0, report.Average.Kcal)
}

func TestWeeklyAveragesOverLoggedDaysOnly(t *testing.T) {
	svc, db, user := newTrendService(t)
	today := dayStart(testNow, testLoc)

	// three logged days out of seven; the average divides by 3, not 7
	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -1), 1800)
	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -3), 2100)
	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -6), 2400)

	report, err := svc.Weekly(user.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2100.0, report.Average.Kcal)
}

func TestWeeklyTrendsAgainstPreviousWindow(t *testing.T) {
	svc, db, user := newTrendService(t)
	today := dayStart(testNow, testLoc)

	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -2), 2200)
	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -10), 2000)

	report, err := svc.Weekly(user.ID, testNow)
	require.NoError(t, err)

	require.Contains(t, report.Trends, "kcal")
	assert.Equal(t, 200.0, report.Trends["kcal"].Delta)
	assert.Equal(t, DirectionUp, report.Trends["kcal"].Direction)
	assert.Equal(t, DirectionFlat, report.Trends["protein"].Direction)
}

func TestWeeklyOmitsTrendsWithoutPreviousData(t *testing.T) {
	svc, db, user := newTrendService(t)
	today := dayStart(testNow, testLoc)

	seedDayKcal(t, db, user.ID, today.AddDate(0, 0, -2), 2200)

	report, err := svc.Weekly(user.ID, testNow)
	require.NoError(t, err)
	assert.Nil(t, report.Trends)
}

func TestWeeklyInsufficientData(t *testing.T) {
	svc, _, user := newTrendService(t)

	_, err := svc.Weekly(user.ID, testNow)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMonthly(t *testing.T) {
	svc, db, user := newTrendService(t)

	// testNow is 2025-09-22
	sep1 := time.Date(2025, 9, 1, 0, 0, 0, 0, testLoc)
	seedDayKcal(t, db, user.ID, sep1, 2000)                  // ISO week 36
	seedDayKcal(t, db, user.ID, sep1.AddDate(0, 0, 7), 2400) // ISO week 37

	// prior month
	seedDayKcal(t, db, user.ID, sep1.AddDate(0, 0, -10), 1800)

	report, err := svc.Monthly(user.ID, 2025, time.September)
	require.NoError(t, err)

	assert.Equal(t, "2025-09", report.Month)
	assert.Equal(t, 2, report.DaysLogged)
	assert.Equal(t, 2200.0, report.Average.Kcal)

	require.NotNil(t, report.PriorAverage)
	assert.Equal(t, 1800.0, report.PriorAverage.Kcal)
	assert.Equal(t, 400.0, report.Trends["kcal"].Delta)
	assert.Equal(t, DirectionUp, report.Trends["kcal"].Direction)

	require.Len(t, report.Weeks, 2)
	assert.Equal(t, 1, report.Weeks[0].Days)
	assert.Equal(t, 2000.0, report.Weeks[0].Average.Kcal)
	assert.Equal(t, 2400.0, report.Weeks[1].Average.Kcal)
}

func TestMonthlyNoPriorMonth(t *testing.T) {
	svc, db, user := newTrendService(t)
	seedDayKcal(t, db, user.ID, time.Date(2025, 9, 5, 0, 0, 0, 0, testLoc), 2000)

	report, err := svc.Monthly(user.ID, 2025, time.September)
	require.NoError(t, err)
	assert.Nil(t, report.PriorAverage)
	assert.Nil(t, report.Trends)
}

func TestMonthlyInsufficientData(t *testing.T) {
	svc, _, user := newTrendService(t)

	_, err := svc.Monthly(user.ID, 2025, time.September)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
