package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progprogect/NutritionBot/models"
)

func newGoalService(t *testing.T) (*GoalService, *models.User) {
	t.Helper()
	db := newTestDB(t)
	agg := NewAggregateService(db, testLoc)
	svc := NewGoalService(db, agg, testLoc)
	return svc, seedUser(t, db, "1")
}

func TestSetGoalValidatesRanges(t *testing.T) {
	svc, user := newGoalService(t)

	require.NoError(t, svc.Set(user.ID, models.NutrientCalories, 2000))

	assert.ErrorIs(t, svc.Set(user.ID, models.NutrientCalories, 400), ErrGoalOutOfRange)
	assert.ErrorIs(t, svc.Set(user.ID, models.NutrientCalories, 9000), ErrGoalOutOfRange)
	assert.ErrorIs(t, svc.Set(user.ID, models.NutrientProtein, 10), ErrGoalOutOfRange)
	assert.ErrorIs(t, svc.Set(user.ID, models.NutrientFiber, 100), ErrGoalOutOfRange)

	// boundaries are inclusive
	require.NoError(t, svc.Set(user.ID, models.NutrientProtein, 20))
	require.NoError(t, svc.Set(user.ID, models.NutrientProtein, 400))
}

func TestSetAndRemoveGoal(t *testing.T) {
	svc, user := newGoalService(t)

	require.NoError(t, svc.Set(user.ID, models.NutrientCalories, 2000))
	require.NoError(t, svc.Set(user.ID, models.NutrientProtein, 120))

	goal, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.NotNil(t, goal.CaloriesGoal)
	assert.Equal(t, 2000.0, *goal.CaloriesGoal)

	require.NoError(t, svc.Remove(user.ID, models.NutrientCalories))
	goal, err = svc.Get(user.ID)
	require.NoError(t, err)
	assert.Nil(t, goal.CaloriesGoal)
	assert.NotNil(t, goal.ProteinGoal)
}

func TestResetGoals(t *testing.T) {
	svc, user := newGoalService(t)

	require.NoError(t, svc.Set(user.ID, models.NutrientCalories, 2000))
	require.NoError(t, svc.Reset(user.ID))

	goal, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.True(t, goal.Empty())
}

func TestProgressBands(t *testing.T) {
	goal := &models.UserGoal{
		CaloriesGoal: fptr(2000),
		ProteinGoal:  fptr(100),
		FatGoal:      fptr(60),
	}
	total := Macros{Kcal: 1500, Protein: 95, Fat: 30, Carbs: 200, Fiber: 10}

	progress := Progress(goal, total)

	// 1500/2000 = 75% -> behind
	require.Contains(t, progress, models.NutrientCalories)
	assert.Equal(t, 75, progress[models.NutrientCalories].Percent)
	assert.Equal(t, BandBehind, progress[models.NutrientCalories].Band)

	// 95/100 = 95% -> on track
	assert.Equal(t, BandOnTrack, progress[models.NutrientProtein].Band)

	// 30/60 = 50% -> far behind
	assert.Equal(t, BandFarBehind, progress[models.NutrientFat].Band)

	// nutrients without a goal are omitted, not reported as zero
	assert.NotContains(t, progress, models.NutrientCarbs)
	assert.NotContains(t, progress, models.NutrientFiber)
}

func TestProgressBandBoundaries(t *testing.T) {
	goal := &models.UserGoal{CaloriesGoal: fptr(1000)}

	p := Progress(goal, Macros{Kcal: 900})
	assert.Equal(t, BandOnTrack, p[models.NutrientCalories].Band)

	// percent is rounded before banding, so 89.9% counts as 90
	p = Progress(goal, Macros{Kcal: 899})
	assert.Equal(t, 90, p[models.NutrientCalories].Percent)
	assert.Equal(t, BandOnTrack, p[models.NutrientCalories].Band)

	p = Progress(goal, Macros{Kcal: 894})
	assert.Equal(t, BandBehind, p[models.NutrientCalories].Band)

	p = Progress(goal, Macros{Kcal: 700})
	assert.Equal(t, BandBehind, p[models.NutrientCalories].Band)

	p = Progress(goal, Macros{Kcal: 694})
	assert.Equal(t, BandFarBehind, p[models.NutrientCalories].Band)
}

func TestSuggestionsOnlyForFarBehind(t *testing.T) {
	goal := &models.UserGoal{
		ProteinGoal: fptr(100),
		CarbsGoal:   fptr(200),
	}
	progress := Progress(goal, Macros{Protein: 30, Carbs: 190})

	hints := Suggestions(progress)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "protein")
}

func TestProgressTodayWithNothingLogged(t *testing.T) {
	svc, user := newGoalService(t)
	require.NoError(t, svc.Set(user.ID, models.NutrientCalories, 2000))

	progress, err := svc.ProgressToday(user.ID, testNow)
	require.NoError(t, err)
	require.Contains(t, progress, models.NutrientCalories)
	assert.Equal(t, 0, progress[models.NutrientCalories].Percent)
	assert.Equal(t, BandFarBehind, progress[models.NutrientCalories].Band)
}
