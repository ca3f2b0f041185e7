package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBadDateToken distinguishes "could not parse the date" from
// "no entries in range" (ErrNoData).
var ErrBadDateToken = errors.New("could not parse date")

// DayRange is a half-open window [Start, End) in the reference timezone.
type DayRange struct {
	Start time.Time
	End   time.Time
	// Title is the normalized token for display: "today", "yesterday"
	// or "DD.MM.YYYY".
	Title string
}

var (
	reDotted = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	reISO    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// DayOf returns the day window containing t.
func DayOf(t time.Time, loc *time.Location) DayRange {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return DayRange{Start: start, End: start.AddDate(0, 0, 1), Title: "today"}
}

// ResolveDayToken parses a date token relative to now. Accepted forms:
// today/yesterday (English and Russian), DD.MM.YYYY, YYYY-MM-DD.
// Non-existent calendar dates (30.02.2025) are rejected.
func ResolveDayToken(token string, now time.Time, loc *time.Location) (DayRange, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))

	switch normalized {
	case "today", "сегодня":
		return DayOf(now, loc), nil
	case "yesterday", "вчера":
		r := DayOf(now.AddDate(0, 0, -1), loc)
		r.Title = "yesterday"
		return r, nil
	}

	if m := reDotted.FindStringSubmatch(normalized); m != nil {
		return calendarDay(m[3], m[2], m[1], loc)
	}
	if m := reISO.FindStringSubmatch(normalized); m != nil {
		return calendarDay(m[1], m[2], m[3], loc)
	}

	return DayRange{}, ErrBadDateToken
}

func calendarDay(year, month, day string, loc *time.Location) (DayRange, error) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	start := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); a round-trip
	// mismatch means the date does not exist.
	if start.Year() != y || start.Month() != time.Month(mo) || start.Day() != d {
		return DayRange{}, ErrBadDateToken
	}

	return DayRange{
		Start: start,
		End:   start.AddDate(0, 0, 1),
		Title: start.Format("02.01.2006"),
	}, nil
}
