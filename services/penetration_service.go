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

type PenetrationService interface {
	// PenetrationPct is the percentage of meetings in [start, end] that
	// produced a linked cross-sale attempt. The numerator is a count of
	// linked attempt rows, not of distinct meetings, so values above 100
	// are reachable and reported as-is. Zero meetings yields 0.
	PenetrationPct(ctx context.Context, tgID int64, start, end time.Time) (float64, error)
	// Summary computes the period's penetration, completion against
	// targetPct, and the delta vs the previous period. The delta is
	// suppressed (nil) when the agent registered after the previous
	// period started.
	Summary(ctx context.Context, tgID int64, kind PeriodKind, d time.Time, targetPct float64) (*models.PenetrationSummary, error)
}

type penetrationService struct {
	attempts  repository.AttemptRepository
	meetings  repository.MeetingRepository
	employees repository.EmployeeRepository
}

func NewPenetrationService(attempts repository.AttemptRepository, meetings repository.MeetingRepository, employees repository.EmployeeRepository) PenetrationService {
	return &penetrationService{
		attempts:  attempts,
		meetings:  meetings,
		employees: employees,
	}
}

// CompletionPct is fact as a percentage of target, rounded. A zero or
// negative target yields 0.
func CompletionPct(factPct, targetPct float64) int {
	if targetPct <= 0 {
		return 0
	}
	return int(math.Round(100 * factPct / targetPct))
}

// DeltaPoints is the percentage-point (not relative) difference between
// two percentages, rounded.
func DeltaPoints(currPct, prevPct float64) int {
	return int(math.Round(currPct - prevPct))
}

func (s *penetrationService) PenetrationPct(ctx context.Context, tgID int64, start, end time.Time) (float64, error) {
	pct, _, _, err := s.penetration(ctx, tgID, start, end)
	return pct, err
}

func (s *penetrationService) penetration(ctx context.Context, tgID int64, start, end time.Time) (pct float64, meetings, linked int, err error) {
	meetings, err = s.meetings.CountMeetings(ctx, tgID, start, end)
	if err != nil {
		return 0, 0, 0, err
	}
	linked, err = s.attempts.LinkedAttemptsCount(ctx, tgID, start, end)
	if err != nil {
		return 0, 0, 0, err
	}
	if meetings == 0 {
		return 0, 0, linked, nil
	}
	return 100 * float64(linked) / float64(meetings), meetings, linked, nil
}

func (s *penetrationService) Summary(ctx context.Context, tgID int64, kind PeriodKind, d time.Time, targetPct float64) (*models.PenetrationSummary, error) {
	curr := PeriodFor(kind, d)
	prev := PrevPeriodFor(kind, d)

	pct, meetings, linked, err := s.penetration(ctx, tgID, curr.Start, curr.End)
	if err != nil {
		return nil, err
	}
	prevPct, _, _, err := s.penetration(ctx, tgID, prev.Start, prev.End)
	if err != nil {
		return nil, err
	}

	summary := &models.PenetrationSummary{
		Period:         string(kind),
		Pct:            pct,
		PrevPct:        prevPct,
		TargetPct:      targetPct,
		CompletionPct:  CompletionPct(pct, targetPct),
		Meetings:       meetings,
		LinkedAttempts: linked,
	}

	// Comparing against a period in which the agent did not yet exist is
	// noise, not signal; the delta is dropped, not computed.
	emp, err := s.employees.GetOrRegister(ctx, tgID)
	if err != nil {
		return nil, err
	}
	if !calendar.DateOnly(emp.CreatedAt).After(prev.Start) {
		delta := DeltaPoints(pct, prevPct)
		summary.DeltaPoints = &delta
	}

	metrics.PenetrationRequestsTotal.WithLabelValues(string(kind)).Inc()
	return summary, nil
}
