package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_MondayStart(t *testing.T) {
	days := MonthGrid(day(2026, 10, 16), time.Monday)
	require.Len(t, days, 35)
	assert.Equal(t, day(2026, 9, 28), days[0])
	assert.Equal(t, day(2026, 11, 1), days[len(days)-1])
	assert.Equal(t, time.Monday, days[0].Weekday())
}

func TestMonthGrid_SundayStart(t *testing.T) {
	days := MonthGrid(day(2026, 10, 1), time.Sunday)
	require.Len(t, days, 35)
	assert.Equal(t, day(2026, 9, 27), days[0])
	assert.Equal(t, day(2026, 10, 31), days[len(days)-1])
}

func TestMonthGrid_ExactFourWeeks(t *testing.T) {
	days := MonthGrid(day(2027, 2, 10), time.Monday)
	require.Len(t, days, 28)
	assert.Equal(t, day(2027, 2, 1), days[0])
	assert.Len(t, Weeks(days), 4)
}

func TestWeeks(t *testing.T) {
	days := MonthGrid(day(2026, 10, 1), time.Monday)
	weeks := Weeks(days)
	require.Len(t, weeks, 5)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}

	partial := Weeks(days[:10])
	require.Len(t, partial, 2)
	assert.Len(t, partial[1], 3)

	assert.Nil(t, Weeks(nil))
}

func TestFindWeek(t *testing.T) {
	weeks := Weeks(MonthGrid(day(2026, 10, 1), time.Monday))

	week, ok := FindWeek(time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC), weeks)
	require.True(t, ok)
	assert.Equal(t, day(2026, 10, 12), week[0])

	_, ok = FindWeek(day(2026, 12, 1), weeks)
	assert.False(t, ok)
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, day(2026, 10, 12), StartOfWeek(day(2026, 10, 18), time.Monday))
	assert.Equal(t, day(2026, 10, 18), StartOfWeek(day(2026, 10, 18), time.Sunday))
	assert.Equal(t, day(2026, 10, 12), StartOfWeek(time.Date(2026, 10, 12, 23, 59, 0, 0, time.UTC), time.Monday))
}

func TestOnDay(t *testing.T) {
	workouts := []Workout{
		{Name: "a", Date: day(2026, 10, 13)},
		{Name: "b", Date: day(2026, 10, 14)},
		{Name: "c", Date: day(2026, 10, 13)},
	}
	got := OnDay(workouts, day(2026, 10, 13))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
	assert.Empty(t, OnDay(workouts, day(2026, 10, 15)))
}

func TestDateKey(t *testing.T) {
	d, err := ParseDateKey("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", DateKey(d))

	_, err = ParseDateKey("16.10.2026")
	assert.Error(t, err)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Styczeń", MonthName(time.January))
	assert.Equal(t, "Październik", MonthName(time.October))
	assert.Equal(t, "Grudzień", MonthName(time.December))
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"Pn", "Wt", "Śr", "Czw", "Pt", "Sb", "Ndz"}, WeekdayHeaders(time.Monday))
	assert.Equal(t, []string{"Ndz", "Pn", "Wt", "Śr", "Czw", "Pt", "Sb"}, WeekdayHeaders(time.Sunday))
}
