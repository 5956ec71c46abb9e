package services_test

import (
	"context"
	"testing"
	"time"

	"salesplan/calendar"
	"salesplan/services"

	"github.com/stretchr/testify/assert"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const agentA int64 = 1001

func TestGetOrCreateMonthPlanIdempotent(t *testing.T) {
	store := newFakeStore()
	cal := calendar.Default()
	ctx := context.Background()
	d := mustDate("2025-02-05")

	first := services.NewPlanService(store, store, cal, 200)
	second := services.NewPlanService(store, store, cal, 300)

	got, err := first.GetOrCreateMonthPlan(ctx, agentA, d)
	assert.NoError(t, err)
	assert.Equal(t, 200, got)

	// A later caller with a different default must see the stored value.
	got, err = second.GetOrCreateMonthPlan(ctx, agentA, d)
	assert.NoError(t, err)
	assert.Equal(t, 200, got)

	// A different month materializes independently.
	got, err = second.GetOrCreateMonthPlan(ctx, agentA, mustDate("2025-03-05"))
	assert.NoError(t, err)
	assert.Equal(t, 300, got)
}

func TestComputePlanBreakdownTargets(t *testing.T) {
	// February 2025 has exactly 20 working days.
	tests := map[string]struct {
		planMonth        int
		date             string
		expectedPlanDay  int
		expectedPlanWeek int
	}{
		"EvenDivision": {
			planMonth:       220,
			date:            "2025-02-05",
			expectedPlanDay: 11,
			// Week Feb 3-9 has 5 working days.
			expectedPlanWeek: 55,
		},
		"HalfRoundsAwayFromZero": {
			planMonth:        110,
			date:             "2025-02-05",
			expectedPlanDay:  6, // 110/20 = 5.5
			expectedPlanWeek: 30,
		},
		"July23Workdays": {
			planMonth:       230,
			date:            "2025-07-09",
			expectedPlanDay: 10,
			// Week Jul 7-13 has 5 working days.
			expectedPlanWeek: 50,
		},
		"WeekWithHolidays": {
			planMonth:       200,
			date:            "2025-06-10",
			expectedPlanDay: 11, // June 2025 has 19 working days
			// Week Jun 9-15 loses Jun 12 and Jun 13.
			expectedPlanWeek: 33,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			svc := services.NewPlanService(store, store, calendar.Default(), tc.planMonth)

			breakdown, err := svc.ComputePlanBreakdown(context.Background(), agentA, mustDate(tc.date))
			assert.NoError(t, err)
			assert.Equal(t, tc.planMonth, breakdown.PlanMonth)
			assert.Equal(t, tc.expectedPlanDay, breakdown.PlanDay)
			assert.Equal(t, tc.expectedPlanWeek, breakdown.PlanWeek)
		})
	}
}

func TestComputePlanBreakdownRunRate(t *testing.T) {
	store := newFakeStore()
	svc := services.NewPlanService(store, store, calendar.Default(), 200)
	ctx := context.Background()

	// 40 attempts by the 5th working day of February (Feb 7).
	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"КН": 25}, mustDate("2025-02-03"), nil))
	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"Вклад": 15}, mustDate("2025-02-05"), nil))

	breakdown, err := svc.ComputePlanBreakdown(ctx, agentA, mustDate("2025-02-07"))
	assert.NoError(t, err)
	assert.Equal(t, 20, breakdown.WorkdaysMonth)
	assert.Equal(t, 5, breakdown.WorkdaysElapsed)
	assert.Equal(t, 40, breakdown.FactMonth)
	// round(40/5 * 20)
	assert.Equal(t, 160, breakdown.RRMonth)
	assert.Equal(t, 10, breakdown.PlanDay)
}

func TestComputePlanBreakdownZeroElapsedWorkdays(t *testing.T) {
	store := newFakeStore()
	svc := services.NewPlanService(store, store, calendar.Default(), 200)
	ctx := context.Background()

	// Feb 1 2025 is a Saturday: zero working days elapsed, but attempts
	// can still be logged on it. The projection falls back to the fact.
	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"КН": 5}, mustDate("2025-02-01"), nil))

	breakdown, err := svc.ComputePlanBreakdown(ctx, agentA, mustDate("2025-02-01"))
	assert.NoError(t, err)
	assert.Equal(t, 0, breakdown.WorkdaysElapsed)
	assert.Equal(t, 5, breakdown.FactMonth)
	assert.Equal(t, 5, breakdown.RRMonth)
}

func TestComputePlanBreakdownMonthWithoutWorkdays(t *testing.T) {
	// A calendar where every July 2025 weekday is a holiday. Defensive
	// path: the daily value falls back to the raw monthly target.
	blocked := make([]string, 0, 31)
	for d := mustDate("2025-07-01"); d.Month() == time.July; d = d.AddDate(0, 0, 1) {
		blocked = append(blocked, d.Format("2006-01-02"))
	}
	cal := calendar.NewCalendar(blocked)

	store := newFakeStore()
	svc := services.NewPlanService(store, store, cal, 200)
	ctx := context.Background()

	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"КН": 7}, mustDate("2025-07-02"), nil))

	breakdown, err := svc.ComputePlanBreakdown(ctx, agentA, mustDate("2025-07-10"))
	assert.NoError(t, err)
	assert.Equal(t, 0, breakdown.WorkdaysMonth)
	assert.Equal(t, 200, breakdown.PlanDay)
	assert.Equal(t, 7, breakdown.RRMonth)
}

func TestComputePlanBreakdownThreeWorkdayMonth(t *testing.T) {
	// A calendar leaving only Jul 1-3 2025 as working days.
	blocked := make([]string, 0, 31)
	for d := mustDate("2025-07-04"); d.Month() == time.July; d = d.AddDate(0, 0, 1) {
		blocked = append(blocked, d.Format("2006-01-02"))
	}
	cal := calendar.NewCalendar(blocked)

	store := newFakeStore()
	svc := services.NewPlanService(store, store, cal, 100)

	breakdown, err := svc.ComputePlanBreakdown(context.Background(), agentA, mustDate("2025-07-02"))
	assert.NoError(t, err)
	assert.Equal(t, 3, breakdown.WorkdaysMonth)
	// round(100/3)
	assert.Equal(t, 33, breakdown.PlanDay)
}

func TestRecordAndSumAttemptsSameDay(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	day := mustDate("2025-02-05")

	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"КН": 3}, day, nil))
	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"Вклад": 2}, day, nil))
	// Zero and negative counts are skipped, not errors.
	assert.NoError(t, store.RecordAttempts(ctx, agentA, map[string]int{"ПУ": 0, "ДК": -1}, day, nil))

	stats, err := store.SumAttempts(ctx, agentA, day, day)
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, map[string]int{"КН": 3, "Вклад": 2}, stats.ByProduct)

	// Inverted range yields zero values.
	stats, err = store.SumAttempts(ctx, agentA, day, day.AddDate(0, 0, -1))
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByProduct)
}
