package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 15}, d)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateArithmetic(t *testing.T) {
	d := MustParseDate("2024-12-31")
	assert.Equal(t, "2025-01-01", d.AddDays(1).String())
	assert.Equal(t, "2024-12-01", d.AddDays(-30).String())
	assert.Equal(t, "2024-03-02", MustParseDate("2024-01-31").AddMonths(1).String())
	assert.Equal(t, "2023-12-15", MustParseDate("2024-01-15").AddMonths(-1).String())

	assert.True(t, MustParseDate("2024-02-28").Before(MustParseDate("2024-02-29")))
	assert.True(t, MustParseDate("2023-12-31").Before(MustParseDate("2024-01-01")))
	assert.Equal(t, 0, d.Compare(NewDate(2024, time.December, 31)))
	assert.True(t, Date{}.IsZero())
}

func TestIsTodayIgnoresTimeOfDay(t *testing.T) {
	d := MustParseDate("2024-03-15")
	assert.True(t, IsToday(d, time.Date(2024, 3, 15, 0, 0, 1, 0, time.Local)))
	assert.True(t, IsToday(d, time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local)))
	assert.False(t, IsToday(d, time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)))
}

func TestParseHour(t *testing.T) {
	h, err := ParseHour("09:00")
	require.NoError(t, err)
	assert.Equal(t, Hour(9), h)
	assert.Equal(t, "09:00", h.String())

	h, err = ParseHour("17:45")
	require.NoError(t, err)
	assert.Equal(t, "17:00", h.String())

	for _, bad := range []string{"", "24:00", "-1:00", "ab:00", "123"} {
		_, err := ParseHour(bad)
		assert.ErrorIs(t, err, ErrInvalidHour, bad)
	}
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "12 AM", Hour(0).Label())
	assert.Equal(t, "9 AM", Hour(9).Label())
	assert.Equal(t, "12 PM", Hour(12).Label())
	assert.Equal(t, "1 PM", Hour(13).Label())
	assert.Len(t, Hours(), 24)
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode(" Month ")
	require.NoError(t, err)
	assert.Equal(t, ViewMonth, m)

	_, err = ParseViewMode("year")
	assert.ErrorIs(t, err, ErrInvalidViewMode)
}

func TestProjectDay(t *testing.T) {
	anchor := MustParseDate("2024-03-15")
	cells := Project(anchor, ViewDay)
	require.Len(t, cells, 1)
	assert.Equal(t, anchor, cells[0].Date)
}

func TestProjectWeek(t *testing.T) {
	for _, anchor := range []string{"2024-03-10", "2024-03-15", "2024-03-16", "2024-12-31", "2025-01-01"} {
		a := MustParseDate(anchor)
		cells := Project(a, ViewWeek)
		require.Len(t, cells, 7, anchor)
		assert.Equal(t, time.Sunday, cells[0].Date.Weekday(), anchor)
		assert.Equal(t, WeekStart(a), cells[0].Date, anchor)
		for i := 1; i < len(cells); i++ {
			assert.Equal(t, cells[i-1].Date.AddDays(1), cells[i].Date, anchor)
		}
		assert.Contains(t, dates(cells), a, anchor)
	}

	cells := Project(MustParseDate("2024-12-31"), ViewWeek)
	assert.Equal(t, "2024-12-29", cells[0].Date.String())
	assert.Equal(t, "2025-01-04", cells[6].Date.String())
	assert.False(t, cells[6].InAnchorMonth)
}

func TestProjectMonthLeapFebruary(t *testing.T) {
	anchor := MustParseDate("2024-02-01")
	require.Equal(t, time.Thursday, anchor.Weekday())

	cells := Project(anchor, ViewMonth)
	require.Len(t, cells, 42)
	assert.Equal(t, "2024-01-28", cells[0].Date.String())
	assert.Equal(t, "2024-03-09", cells[41].Date.String())

	var inMonth []string
	for i, c := range cells {
		if i > 0 {
			assert.True(t, cells[i-1].Date.Before(c.Date))
		}
		if c.InAnchorMonth {
			inMonth = append(inMonth, c.Date.String())
		}
	}
	require.Len(t, inMonth, 29)
	assert.Equal(t, "2024-02-01", inMonth[0])
	assert.Equal(t, "2024-02-29", inMonth[28])
}

func TestProjectMonthAnyAnchorDay(t *testing.T) {
	// A 31-day month starting on Saturday needs all six weeks.
	cells := Project(MustParseDate("2025-03-20"), ViewMonth)
	require.Len(t, cells, 42)
	count := 0
	for _, c := range cells {
		if c.InAnchorMonth {
			count++
		}
	}
	assert.Equal(t, 31, count)
	assert.Equal(t, "2025-04-05", cells[41].Date.String())
}

func TestProjectIsPure(t *testing.T) {
	anchor := MustParseDate("2024-07-04")
	for _, mode := range ViewModes() {
		assert.Equal(t, Project(anchor, mode), Project(anchor, mode), mode)
	}
	assert.Nil(t, Project(anchor, ViewMode("year")))
}

func TestShift(t *testing.T) {
	a := MustParseDate("2024-03-15")
	assert.Equal(t, "2024-03-14", Shift(a, ViewDay, -1).String())
	assert.Equal(t, "2024-03-22", Shift(a, ViewWeek, 1).String())
	assert.Equal(t, "2024-04-15", Shift(a, ViewMonth, 1).String())
	assert.Equal(t, "2023-12-15", Shift(MustParseDate("2024-01-15"), ViewMonth, -1).String())
}

func TestRangeTitle(t *testing.T) {
	a := MustParseDate("2024-03-15")
	assert.Equal(t, "March 15, 2024", RangeTitle(a, ViewDay))
	assert.Equal(t, "March 10 - March 16, 2024", RangeTitle(a, ViewWeek))
	assert.Equal(t, "March 2024", RangeTitle(a, ViewMonth))
}

func dates(cells []Cell) []Date {
	out := make([]Date, len(cells))
	for i, c := range cells {
		out[i] = c.Date
	}
	return out
}
