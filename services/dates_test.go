package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 22, 14, 30, 0, 0, time.UTC)

func TestResolveDayTokenToday(t *testing.T) {
	for _, token := range []string{"today", "сегодня", "  Today "} {
		r, err := ResolveDayToken(token, testNow, time.UTC)
		require.NoError(t, err, token)
		assert.Equal(t, time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC), r.End)
		assert.Equal(t, "today", r.Title)
	}
}

func TestResolveDayTokenYesterday(t *testing.T) {
	for _, token := range []string{"yesterday", "вчера"} {
		r, err := ResolveDayToken(token, testNow, time.UTC)
		require.NoError(t, err, token)
		assert.Equal(t, time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC), r.End)
		assert.Equal(t, "yesterday", r.Title)
	}
}

func TestResolveDayTokenExplicitDates(t *testing.T) {
	for _, token := range []string{"21.09.2025", "2025-09-21"} {
		r, err := ResolveDayToken(token, testNow, time.UTC)
		require.NoError(t, err, token)
		assert.Equal(t, time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC), r.End)
		assert.Equal(t, "21.09.2025", r.Title)
	}
}

func TestResolveDayTokenRejectsNonexistentDates(t *testing.T) {
	for _, token := range []string{"30.02.2025", "2025-02-30", "32.01.2025"} {
		_, err := ResolveDayToken(token, testNow, time.UTC)
		assert.ErrorIs(t, err, ErrBadDateToken, token)
	}
}

func TestResolveDayTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "tomorrow", "21/09/2025", "pizza"} {
		_, err := ResolveDayToken(token, testNow, time.UTC)
		assert.ErrorIs(t, err, ErrBadDateToken, token)
	}
}

func TestDayOfUsesLocation(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 23:30 UTC on Sep 21 is already Sep 22 in Warsaw (UTC+2 in summer).
	late := time.Date(2025, 9, 21, 23, 30, 0, 0, time.UTC)
	r := DayOf(late, warsaw)
	assert.Equal(t, 22, r.Start.Day())
}
