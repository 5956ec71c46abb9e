// Package calendar classifies dates as working or non-working for the
// Russian production calendar (5-day week minus designated holidays) and
// provides counting helpers for plan derivation. Pure functions, no I/O;
// callers pass already-localized dates.
package calendar

import "time"

const dateLayout = "2006-01-02"

// Calendar holds the holiday set it classifies against. Each calendar
// year has its own table; new years are a data update via NewCalendar.
type Calendar struct {
	holidays map[string]struct{}
}

// NewCalendar builds a calendar from one or more per-year holiday tables.
func NewCalendar(tables ...[]string) *Calendar {
	holidays := make(map[string]struct{})
	for _, table := range tables {
		for _, day := range table {
			holidays[day] = struct{}{}
		}
	}
	return &Calendar{holidays: holidays}
}

// Default returns a calendar loaded with all shipped holiday tables.
func Default() *Calendar {
	return NewCalendar(Holidays2024, Holidays2025, Holidays2026)
}

// DateOnly strips the time component, keeping year/month/day in UTC.
// All stored and compared dates go through this normalization.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWorkday reports whether d is a Monday-Friday date outside the
// holiday set.
func (c *Calendar) IsWorkday(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[d.Format(dateLayout)]
	return !holiday
}

// CountWorkdays counts working days in the closed range [start, end].
// Inverted ranges yield 0.
func (c *Calendar) CountWorkdays(start, end time.Time) int {
	start = DateOnly(start)
	end = DateOnly(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkday(d) {
			count++
		}
	}
	return count
}

// MonthWorkdays counts working days in the full calendar month
// containing d.
func (c *Calendar) MonthWorkdays(d time.Time) int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return c.CountWorkdays(first, last)
}

// MonthWorkdaysElapsed counts working days from the first of d's month
// through d inclusive.
func (c *Calendar) MonthWorkdaysElapsed(d time.Time) int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return c.CountWorkdays(first, d)
}

// WeekWorkdays counts working days across the full Monday-Sunday week
// containing d, even when part of the week falls in another month.
func (c *Calendar) WeekWorkdays(d time.Time) int {
	start := WeekStart(d)
	return c.CountWorkdays(start, start.AddDate(0, 0, 6))
}

// WeekStart returns the Monday of the ISO week containing d.
func WeekStart(d time.Time) time.Time {
	d = DateOnly(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
