package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

// ErrNoData means nothing was logged in the requested range. Callers must
// be able to tell this apart from a logged total of zero.
var ErrNoData = errors.New("no entries in range")

type AggregateService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAggregateService(db *gorm.DB, loc *time.Location) *AggregateService {
	return &AggregateService{db: db, loc: loc}
}

// ReportItem is one line of a day report.
type ReportItem struct {
	ItemID  uint            `json:"item_id"`
	EntryID uint            `json:"entry_id"`
	Name    string          `json:"name"`
	Grams   float64         `json:"grams"`
	Slot    models.MealSlot `json:"slot"`
	Macros  Macros          `json:"macros"`
}

// DayReport is the aggregated view of one day window.
type DayReport struct {
	Range DayRange     `json:"-"`
	Title string       `json:"title"`
	Items []ReportItem `json:"items"`
	Total Macros       `json:"total"`
	// Per-slot subtotals; entries without a slot sum under SlotUnset and
	// are never merged into another bucket.
	Slots map[models.MealSlot]Macros `json:"slots"`
}

// DayTotals aggregates all line items whose entry falls inside r.
// Items are ordered by (entry creation, item creation) so results are
// stable and reproducible.
func (s *AggregateService) DayTotals(userID uint, r DayRange) (*DayReport, error) {
	entries, err := s.entriesInRange(userID, r.Start, r.End)
	if err != nil {
		return nil, err
	}

	report := &DayReport{
		Range: r,
		Title: r.Title,
		Slots: map[models.MealSlot]Macros{},
	}
	for _, e := range entries {
		for _, it := range e.Items {
			m := itemMacros(it)
			report.Items = append(report.Items, ReportItem{
				ItemID:  it.ID,
				EntryID: e.ID,
				Name:    it.Name,
				Grams:   it.ResolvedGrams,
				Slot:    e.MealSlot,
				Macros:  m,
			})
			report.Total = report.Total.Add(m)
			report.Slots[e.MealSlot] = report.Slots[e.MealSlot].Add(m)
		}
	}

	if len(report.Items) == 0 {
		return nil, ErrNoData
	}
	return report, nil
}

// DayTotal is one day's summed macros, for trend windows.
type DayTotal struct {
	Day    time.Time `json:"day"`
	Macros Macros    `json:"macros"`
}

// RangeDailyTotals sums items per consumption day over [from, to).
// Days with no entries are absent from the result.
func (s *AggregateService) RangeDailyTotals(userID uint, from, to time.Time) ([]DayTotal, error) {
	entries, err := s.entriesInRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := map[time.Time]Macros{}
	for _, e := range entries {
		day := dayStart(e.ConsumedAt, s.loc)
		for _, it := range e.Items {
			byDay[day] = byDay[day].Add(itemMacros(it))
		}
	}

	totals := make([]DayTotal, 0, len(byDay))
	for day, m := range byDay {
		totals = append(totals, DayTotal{Day: day, Macros: m})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Day.Before(totals[j].Day) })
	return totals, nil
}

func (s *AggregateService) entriesInRange(userID uint, from, to time.Time) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("food_items.id ASC") }).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, from, to).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func itemMacros(it models.FoodItem) Macros {
	return Macros{
		Kcal:    it.Kcal,
		Protein: it.Protein,
		Fat:     it.Fat,
		Carbs:   it.Carbs,
		Fiber:   it.Fiber,
	}
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
