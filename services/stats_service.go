package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"salesplan/calendar"
	"salesplan/models"
	repository "salesplan/repositories"
)

type StatsService interface {
	// DayWeekMonth returns attempt totals and per-product breakdowns for
	// today, the ISO week to date and the calendar month to date. The
	// caller decides which calendar day "today" is for this agent.
	DayWeekMonth(ctx context.Context, tgID int64, today time.Time) (*models.DayWeekMonthStats, error)
	// MonthRanking ranks all agents by month-to-date attempt totals,
	// highest first.
	MonthRanking(ctx context.Context, today time.Time) ([]models.RankingEntry, error)
	// DayTopBottom returns the two best and two worst agents for a day.
	DayTopBottom(ctx context.Context, day time.Time) (top, bottom []models.LeaderboardEntry, err error)
}

type statsService struct {
	attempts  repository.AttemptRepository
	employees repository.EmployeeRepository
}

func NewStatsService(attempts repository.AttemptRepository, employees repository.EmployeeRepository) StatsService {
	return &statsService{
		attempts:  attempts,
		employees: employees,
	}
}

func (s *statsService) DayWeekMonth(ctx context.Context, tgID int64, today time.Time) (*models.DayWeekMonthStats, error) {
	today = calendar.DateOnly(today)
	weekStart := calendar.WeekStart(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	dayStats, err := s.attempts.SumAttempts(ctx, tgID, today, today)
	if err != nil {
		return nil, err
	}
	weekStats, err := s.attempts.SumAttempts(ctx, tgID, weekStart, today)
	if err != nil {
		return nil, err
	}
	monthStats, err := s.attempts.SumAttempts(ctx, tgID, monthStart, today)
	if err != nil {
		return nil, err
	}

	return &models.DayWeekMonthStats{
		Today: dayStats,
		Week:  weekStats,
		Month: monthStats,
	}, nil
}

func (s *statsService) MonthRanking(ctx context.Context, today time.Time) ([]models.RankingEntry, error) {
	today = calendar.DateOnly(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	sums, err := s.attempts.SumAttemptsByAgent(ctx, monthStart, today)
	if err != nil {
		return nil, err
	}

	entries, err := s.namedEntries(ctx, sums)
	if err != nil {
		return nil, err
	}

	ranking := make([]models.RankingEntry, 0, len(entries))
	for _, e := range entries {
		ranking = append(ranking, models.RankingEntry{TgID: e.tgID, AgentName: e.name, Total: e.total})
	}
	return ranking, nil
}

func (s *statsService) DayTopBottom(ctx context.Context, day time.Time) ([]models.LeaderboardEntry, []models.LeaderboardEntry, error) {
	day = calendar.DateOnly(day)

	sums, err := s.attempts.SumAttemptsByAgent(ctx, day, day)
	if err != nil {
		return nil, nil, err
	}
	if len(sums) == 0 {
		return nil, nil, nil
	}

	entries, err := s.namedEntries(ctx, sums)
	if err != nil {
		return nil, nil, err
	}

	toBoard := func(es []namedEntry) []models.LeaderboardEntry {
		board := make([]models.LeaderboardEntry, 0, len(es))
		for _, e := range es {
			board = append(board, models.LeaderboardEntry{AgentName: e.name, Total: e.total})
		}
		return board
	}

	top := entries
	if len(top) > 2 {
		top = top[:2]
	}
	bottom := entries
	if len(bottom) > 2 {
		bottom = bottom[len(bottom)-2:]
	}
	return toBoard(top), toBoard(bottom), nil
}

type namedEntry struct {
	tgID  int64
	name  string
	total int
}

// namedEntries joins per-agent sums with active employee names and sorts
// by total descending, tg_id ascending for a stable order.
func (s *statsService) namedEntries(ctx context.Context, sums map[int64]int) ([]namedEntry, error) {
	ids := make([]int64, 0, len(sums))
	for tgID := range sums {
		ids = append(ids, tgID)
	}

	names, err := s.employees.ActiveNamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]namedEntry, 0, len(sums))
	for tgID, total := range sums {
		name, ok := names[tgID]
		if !ok {
			name = fmt.Sprintf("agent?%d", tgID)
		}
		entries = append(entries, namedEntry{tgID: tgID, name: name, total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return entries[i].tgID < entries[j].tgID
	})
	return entries, nil
}
