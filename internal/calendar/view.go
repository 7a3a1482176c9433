package calendar

import (
	"errors"
	"fmt"
	"strings"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

var ErrInvalidViewMode = errors.New("view mode must be day, week or month")

// ViewModes is the tab order shown in the header.
func ViewModes() []ViewMode {
	return []ViewMode{ViewDay, ViewWeek, ViewMonth}
}

func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ViewDay, ViewWeek, ViewMonth:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

func (m ViewMode) Label() string {
	switch m {
	case ViewDay:
		return "Day"
	case ViewWeek:
		return "Week"
	case ViewMonth:
		return "Month"
	default:
		return string(m)
	}
}

func (m ViewMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

func (m *ViewMode) UnmarshalText(b []byte) error {
	parsed, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

const (
	DaysPerWeek = 7
	MonthCells  = 6 * DaysPerWeek
)

// Cell is one projected calendar date. InAnchorMonth only changes display
// emphasis; overflow days remain drop targets.
type Cell struct {
	Date          Date
	InAnchorMonth bool
}

// WeekStart returns the Sunday on or before d.
func WeekStart(d Date) Date {
	return d.AddDays(-int(d.Weekday()))
}

// Project returns the dates a view shows around anchor, in ascending order.
// An unknown mode projects nothing.
func Project(anchor Date, mode ViewMode) []Cell {
	switch mode {
	case ViewDay:
		return []Cell{{Date: anchor, InAnchorMonth: true}}
	case ViewWeek:
		return run(WeekStart(anchor), DaysPerWeek, anchor)
	case ViewMonth:
		return run(MonthStart(anchor), MonthCells, anchor)
	default:
		return nil
	}
}

func run(start Date, n int, anchor Date) []Cell {
	cells := make([]Cell, n)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = Cell{Date: d, InAnchorMonth: d.SameMonth(anchor)}
	}
	return cells
}

// Shift moves anchor by steps whole views (negative steps go back).
func Shift(anchor Date, mode ViewMode, steps int) Date {
	switch mode {
	case ViewDay:
		return anchor.AddDays(steps)
	case ViewWeek:
		return anchor.AddDays(steps * DaysPerWeek)
	case ViewMonth:
		return anchor.AddMonths(steps)
	default:
		return anchor
	}
}

// RangeTitle is the header text describing what a view covers.
func RangeTitle(anchor Date, mode ViewMode) string {
	switch mode {
	case ViewDay:
		return anchor.Time().Format("January 2, 2006")
	case ViewWeek:
		start := WeekStart(anchor)
		end := start.AddDays(DaysPerWeek - 1)
		return start.Time().Format("January 2") + " - " + end.Time().Format("January 2, 2006")
	case ViewMonth:
		return anchor.Time().Format("January 2006")
	default:
		return ""
	}
}

// ShortLabel is the per-cell heading, e.g. "Fri 3/15".
func (d Date) ShortLabel() string {
	return d.Time().Format("Mon 1/2")
}

// MonthStart is the first date of the six-week grid for anchor's month.
func MonthStart(anchor Date) Date {
	return WeekStart(anchor.FirstOfMonth())
}
