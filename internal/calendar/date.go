package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	ErrInvalidHour = errors.New("time must be HH:MM with hour 00-23")
)

// Date is a calendar day with no time-of-day or location attached.
// Its String form is the ISO key tasks are bound by.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar fields of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the local calendar date of now.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time is midnight UTC on d. Day arithmetic is done in UTC so DST never
// shifts a date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths keeps the day of month and lets it overflow into the next
// month, so Jan 31 + 1 month is Mar 2 (or Mar 3 outside leap years).
func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// IsToday compares calendar fields only; the time of day in now is ignored.
func IsToday(d Date, now time.Time) bool {
	return d.Equal(Today(now))
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Hour is an hour-of-day slot. Minutes are not modelled.
type Hour int

const HoursPerDay = 24

func NewHour(h int) (Hour, error) {
	if h < 0 || h >= HoursPerDay {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHour, h)
	}
	return Hour(h), nil
}

// ParseHour accepts "HH:MM" (or a bare "HH") and keeps only the hour.
func ParseHour(s string) (Hour, error) {
	s = strings.TrimSpace(s)
	hh, _, _ := strings.Cut(s, ":")
	n, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}
	return NewHour(n)
}

func (h Hour) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}

// Label is the 12-hour form used on slot headers, e.g. "9 AM".
func (h Hour) Label() string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", int(h))
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", int(h)-12)
	}
}

// Hours lists every slot of a day view in order.
func Hours() []Hour {
	hours := make([]Hour, HoursPerDay)
	for i := range hours {
		hours[i] = Hour(i)
	}
	return hours
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
