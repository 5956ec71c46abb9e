package services

import (
	"context"
	"math"
	"time"

	"salesplan/calendar"
	"salesplan/metrics"
	"salesplan/models"
	repository "salesplan/repositories"
)

// DefaultMonthPlan is the monthly attempt target materialized for an
// agent whose plan was never set.
const DefaultMonthPlan = 200

type PlanService interface {
	// GetOrCreateMonthPlan returns the plan value for d's month, creating
	// it with the service default if absent. Idempotent per
	// (agent, year, month).
	GetOrCreateMonthPlan(ctx context.Context, tgID int64, d time.Time) (int, error)
	// ComputePlanBreakdown derives the daily/weekly targets and the
	// month-end run-rate projection for d.
	ComputePlanBreakdown(ctx context.Context, tgID int64, d time.Time) (*models.PlanBreakdown, error)
	// SetMonthPlan overwrites a month plan value (admin path).
	SetMonthPlan(ctx context.Context, tgID int64, year, month, value int) error
}

type planService struct {
	plans       repository.PlanRepository
	attempts    repository.AttemptRepository
	cal         *calendar.Calendar
	defaultPlan int
}

func NewPlanService(plans repository.PlanRepository, attempts repository.AttemptRepository, cal *calendar.Calendar, defaultPlan int) PlanService {
	if defaultPlan <= 0 {
		defaultPlan = DefaultMonthPlan
	}
	return &planService{
		plans:       plans,
		attempts:    attempts,
		cal:         cal,
		defaultPlan: defaultPlan,
	}
}

func (s *planService) GetOrCreateMonthPlan(ctx context.Context, tgID int64, d time.Time) (int, error) {
	return s.plans.GetOrCreate(ctx, tgID, d.Year(), int(d.Month()), s.defaultPlan)
}

func (s *planService) SetMonthPlan(ctx context.Context, tgID int64, year, month, value int) error {
	return s.plans.Set(ctx, tgID, year, month, value)
}

func (s *planService) ComputePlanBreakdown(ctx context.Context, tgID int64, d time.Time) (*models.PlanBreakdown, error) {
	timer := time.Now()
	defer func() {
		metrics.BreakdownDurationSeconds.Observe(time.Since(timer).Seconds())
	}()

	d = calendar.DateOnly(d)

	planMonth, err := s.GetOrCreateMonthPlan(ctx, tgID, d)
	if err != nil {
		return nil, err
	}

	workdaysMonth := s.cal.MonthWorkdays(d)
	workdaysElapsed := s.cal.MonthWorkdaysElapsed(d)

	// A month without working days would divide by zero; fall back to the
	// raw monthly target as the daily value.
	planDay := planMonth
	if workdaysMonth > 0 {
		planDay = int(math.Round(float64(planMonth) / float64(workdaysMonth)))
	}
	planWeek := planDay * s.cal.WeekWorkdays(d)

	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	fact, err := s.attempts.SumAttempts(ctx, tgID, monthStart, d)
	if err != nil {
		return nil, err
	}

	// Run rate extrapolates the elapsed working-day pace to the full
	// month. With no elapsed working days there is no pace yet, so the
	// projection is just the fact so far.
	rrMonth := fact.Total
	if workdaysMonth > 0 && workdaysElapsed > 0 {
		pace := float64(fact.Total) / float64(workdaysElapsed)
		rrMonth = int(math.Round(pace * float64(workdaysMonth)))
	}

	return &models.PlanBreakdown{
		PlanMonth:       planMonth,
		PlanDay:         planDay,
		PlanWeek:        planWeek,
		RRMonth:         rrMonth,
		FactMonth:       fact.Total,
		WorkdaysMonth:   workdaysMonth,
		WorkdaysElapsed: workdaysElapsed,
	}, nil
}
