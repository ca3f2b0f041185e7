package services

import (
	"errors"
	"fmt"
	"time"
)

var ErrInsufficientData = errors.New("not enough logged days for a trend")

// Direction labels how a window average moved against the prior window.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Trend compares one nutrient's average against the previous window.
type Trend struct {
	Delta     float64   `json:"delta"`
	Direction Direction `json:"direction"`
}

func trendOf(current, previous float64) Trend {
	delta := round1(current - previous)
	dir := DirectionFlat
	switch {
	case delta > 0:
		dir = DirectionUp
	case delta < 0:
		dir = DirectionDown
	}
	return Trend{Delta: delta, Direction: dir}
}

// WeeklyReport covers the trailing seven full days, today excluded.
type WeeklyReport struct {
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Days    []DayTotal       `json:"days"`
	Average Macros           `json:"average"`
	Trends  map[string]Trend `json:"trends,omitempty"`
}

// MonthWeek is the per-ISO-week breakdown inside a month report.
type MonthWeek struct {
	Week    int    `json:"week"`
	Days    int    `json:"days"`
	Average Macros `json:"average"`
}

type MonthlyReport struct {
	Month        string           `json:"month"`
	DaysLogged   int              `json:"days_logged"`
	Average      Macros           `json:"average"`
	PriorAverage *Macros          `json:"prior_average,omitempty"`
	Trends       map[string]Trend `json:"trends,omitempty"`
	Weeks        []MonthWeek      `json:"weeks"`
}

type TrendService struct {
	agg *AggregateService
	loc *time.Location
}

func NewTrendService(agg *AggregateService, loc *time.Location) *TrendService {
	return &TrendService{agg: agg, loc: loc}
}

func averageOf(days []DayTotal) Macros {
	var sum Macros
	for _, d := range days {
		sum = sum.Add(d.Macros)
	}
	n := len(days)
	if n == 0 {
		return Macros{}
	}
	avg := sum.Div(float64(n))
	return Macros{
		Kcal:    round1(avg.Kcal),
		Protein: round1(avg.Protein),
		Fat:     round1(avg.Fat),
		Carbs:   round1(avg.Carbs),
		Fiber:   round1(avg.Fiber),
	}
}

func macroTrends(current, previous Macros) map[string]Trend {
	return map[string]Trend{
		"kcal":    trendOf(current.Kcal, previous.Kcal),
		"protein": trendOf(current.Protein, previous.Protein),
		"fat":     trendOf(current.Fat, previous.Fat),
		"carbs":   trendOf(current.Carbs, previous.Carbs),
		"fiber":   trendOf(current.Fiber, previous.Fiber),
	}
}

// Weekly averages the last seven full days and, when the seven days
// before those hold any data, attaches per-nutrient trends.
func (s *TrendService) Weekly(userID uint, now time.Time) (*WeeklyReport, error) {
	today := dayStart(now, s.loc)
	from := today.AddDate(0, 0, -7)
	prevFrom := today.AddDate(0, 0, -14)

	days, err := s.agg.RangeDailyTotals(userID, from, today)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrInsufficientData
	}

	report := &WeeklyReport{
		From:    from,
		To:      today.AddDate(0, 0, -1),
		Days:    days,
		Average: averageOf(days),
	}

	prevDays, err := s.agg.RangeDailyTotals(userID, prevFrom, from)
	if err != nil {
		return nil, err
	}
	if len(prevDays) > 0 {
		report.Trends = macroTrends(report.Average, averageOf(prevDays))
	}
	return report, nil
}

// Monthly averages the given calendar month, compares against the prior
// month when it has data, and breaks the month down by ISO week.
func (s *TrendService) Monthly(userID uint, year int, month time.Month) (*MonthlyReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	priorFrom := from.AddDate(0, -1, 0)

	days, err := s.agg.RangeDailyTotals(userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrInsufficientData
	}

	report := &MonthlyReport{
		Month:      fmt.Sprintf("%04d-%02d", year, int(month)),
		DaysLogged: len(days),
		Average:    averageOf(days),
		Weeks:      weekBreakdown(days),
	}

	priorDays, err := s.agg.RangeDailyTotals(userID, priorFrom, from)
	if err != nil {
		return nil, err
	}
	if len(priorDays) > 0 {
		prior := averageOf(priorDays)
		report.PriorAverage = &prior
		report.Trends = macroTrends(report.Average, prior)
	}
	return report, nil
}

func weekBreakdown(days []DayTotal) []MonthWeek {
	type bucket struct {
		week int
		days []DayTotal
	}
	var buckets []*bucket
	index := map[int]*bucket{}
	for _, d := range days {
		_, wk := d.Day.ISOWeek()
		b, ok := index[wk]
		if !ok {
			b = &bucket{week: wk}
			index[wk] = b
			buckets = append(buckets, b)
		}
		b.days = append(b.days, d)
	}

	out := make([]MonthWeek, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MonthWeek{
			Week:    b.week,
			Days:    len(b.days),
			Average: averageOf(b.days),
		})
	}
	return out
}
