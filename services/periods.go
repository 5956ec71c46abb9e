package services

import (
	"fmt"
	"time"

	"salesplan/calendar"
)

// Period is a closed inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodKind selects one of the standard reporting ranges.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

// ParsePeriodKind validates a period string from the API surface.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return PeriodKind(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// DayPeriod is the single day containing d.
func DayPeriod(d time.Time) Period {
	d = calendar.DateOnly(d)
	return Period{Start: d, End: d}
}

// WeekPeriod is the Monday-start ISO week containing d, Monday through
// Sunday.
func WeekPeriod(d time.Time) Period {
	start := calendar.WeekStart(d)
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthPeriod is the full calendar month containing d.
func MonthPeriod(d time.Time) Period {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first, End: first.AddDate(0, 1, -1)}
}

// PeriodFor maps a kind to its range containing d.
func PeriodFor(kind PeriodKind, d time.Time) Period {
	switch kind {
	case PeriodWeek:
		return WeekPeriod(d)
	case PeriodMonth:
		return MonthPeriod(d)
	default:
		return DayPeriod(d)
	}
}

// PrevPeriodFor maps a kind to the range immediately preceding the one
// containing d. Month arithmetic is calendar-based: the previous month's
// end is the day before this month's first day, and its start is that
// date with day 1 -- never a fixed 30-day subtraction.
func PrevPeriodFor(kind PeriodKind, d time.Time) Period {
	switch kind {
	case PeriodWeek:
		return WeekPeriod(calendar.WeekStart(d).AddDate(0, 0, -7))
	case PeriodMonth:
		prevEnd := MonthPeriod(d).Start.AddDate(0, 0, -1)
		prevStart := time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Period{Start: prevStart, End: prevEnd}
	default:
		return DayPeriod(calendar.DateOnly(d).AddDate(0, 0, -1))
	}
}
