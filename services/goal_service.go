package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

var ErrGoalOutOfRange = errors.New("goal value out of range")

// GoalRange bounds acceptable goal values, enforced at write time so the
// progress evaluator never sees a zero or negative target.
type GoalRange struct {
	Min  float64
	Max  float64
	Unit string
}

var GoalRanges = map[models.Nutrient]GoalRange{
	models.NutrientCalories: {Min: 500, Max: 8000, Unit: "kcal/day"},
	models.NutrientProtein:  {Min: 20, Max: 400, Unit: "g/day"},
	models.NutrientFat:      {Min: 10, Max: 200, Unit: "g/day"},
	models.NutrientCarbs:    {Min: 50, Max: 800, Unit: "g/day"},
	models.NutrientFiber:    {Min: 5, Max: 80, Unit: "g/day"},
}

// Band is the qualitative reading of a progress percentage.
type Band string

const (
	BandOnTrack   Band = "on_track"   // >= 90%
	BandBehind    Band = "behind"     // 70..89%
	BandFarBehind Band = "far_behind" // < 70%
)

func bandFor(percent int) Band {
	switch {
	case percent >= 90:
		return BandOnTrack
	case percent >= 70:
		return BandBehind
	default:
		return BandFarBehind
	}
}

// NutrientProgress is one nutrient's standing against its goal.
type NutrientProgress struct {
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
	Percent int     `json:"percent"`
	Band    Band    `json:"band"`
}

type GoalService struct {
	db  *gorm.DB
	agg *AggregateService
	loc *time.Location
}

func NewGoalService(db *gorm.DB, agg *AggregateService, loc *time.Location) *GoalService {
	return &GoalService{db: db, agg: agg, loc: loc}
}

// Get returns the user's goals, or an empty set when none were stored.
func (s *GoalService) Get(userID uint) (*models.UserGoal, error) {
	var goal models.UserGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserGoal{UserID: userID}, nil
		}
		return nil, err
	}
	return &goal, nil
}

// Set replaces one nutrient's target wholesale.
func (s *GoalService) Set(userID uint, nutrient models.Nutrient, value float64) error {
	r, ok := GoalRanges[nutrient]
	if !ok {
		return fmt.Errorf("unknown nutrient %q", nutrient)
	}
	if value < r.Min || value > r.Max {
		return fmt.Errorf("%w: %s must be between %g and %g %s",
			ErrGoalOutOfRange, nutrient, r.Min, r.Max, r.Unit)
	}

	var goal models.UserGoal
	err := s.db.Where(models.UserGoal{UserID: userID}).FirstOrCreate(&goal).Error
	if err != nil {
		return err
	}
	goal.SetTarget(nutrient, &value)
	return s.db.Save(&goal).Error
}

// Remove nulls a single nutrient's target.
func (s *GoalService) Remove(userID uint, nutrient models.Nutrient) error {
	goal, err := s.Get(userID)
	if err != nil {
		return err
	}
	if goal.ID == 0 {
		return nil
	}
	goal.SetTarget(nutrient, nil)
	return s.db.Save(goal).Error
}

// Reset drops the whole goal row.
func (s *GoalService) Reset(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.UserGoal{}).Error
}

// Progress evaluates a day total against the goal set. Nutrients without a
// goal are omitted entirely, never reported as 0%.
func Progress(goal *models.UserGoal, total Macros) map[models.Nutrient]NutrientProgress {
	current := map[models.Nutrient]float64{
		models.NutrientCalories: math.Round(total.Kcal),
		models.NutrientProtein:  round1(total.Protein),
		models.NutrientFat:      round1(total.Fat),
		models.NutrientCarbs:    round1(total.Carbs),
		models.NutrientFiber:    round1(total.Fiber),
	}

	raw := map[models.Nutrient]float64{
		models.NutrientCalories: total.Kcal,
		models.NutrientProtein:  total.Protein,
		models.NutrientFat:      total.Fat,
		models.NutrientCarbs:    total.Carbs,
		models.NutrientFiber:    total.Fiber,
	}

	out := map[models.Nutrient]NutrientProgress{}
	for _, n := range models.Nutrients {
		target := goal.Target(n)
		if target == nil || *target <= 0 {
			continue
		}
		percent := int(math.Round(raw[n] / *target * 100))
		out[n] = NutrientProgress{
			Current: current[n],
			Goal:    *target,
			Percent: percent,
			Band:    bandFor(percent),
		}
	}
	return out
}

// ProgressToday combines today's aggregate with the stored goals.
// A day with nothing logged evaluates as zero consumed, which is the
// honest progress reading (distinct from the /day view's no-data reply).
func (s *GoalService) ProgressToday(userID uint, now time.Time) (map[models.Nutrient]NutrientProgress, error) {
	goal, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	var total Macros
	report, err := s.agg.DayTotals(userID, DayOf(now, s.loc))
	if err != nil && !errors.Is(err, ErrNoData) {
		return nil, err
	}
	if report != nil {
		total = report.Total
	}

	return Progress(goal, total), nil
}

var suggestionFoods = map[models.Nutrient]string{
	models.NutrientCalories: "add calories (nuts, avocado, oils)",
	models.NutrientProtein:  "add protein (meat, fish, eggs, cottage cheese)",
	models.NutrientCarbs:    "add carbs (vegetables, fruit, grains)",
	models.NutrientFiber:    "add fiber (vegetables, whole grains)",
}

// Suggestions lists food hints for nutrients running far behind goal.
func Suggestions(progress map[models.Nutrient]NutrientProgress) []string {
	var out []string
	for _, n := range models.Nutrients {
		p, ok := progress[n]
		if !ok {
			continue
		}
		if hint, has := suggestionFoods[n]; has && p.Band == BandFarBehind {
			out = append(out, hint)
		}
	}
	return out
}
