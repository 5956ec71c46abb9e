package services_test

import (
	"context"
	"fmt"
	"time"

	"salesplan/calendar"
	"salesplan/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo repositories, keeping
// the same append-only and create-if-absent semantics.
type fakeStore struct {
	attempts  []models.Attempt
	meetings  []models.Meeting
	plans     map[string]int
	employees map[int64]models.Employee
	now       time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:     map[string]int{},
		employees: map[int64]models.Employee{},
		now:       time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC),
	}
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func (f *fakeStore) RecordAttempts(_ context.Context, tgID int64, counts map[string]int, forDate time.Time, meetingID *primitive.ObjectID) error {
	forDate = calendar.DateOnly(forDate)
	for product, count := range counts {
		if count <= 0 {
			continue
		}
		f.attempts = append(f.attempts, models.Attempt{
			ID:           primitive.NewObjectID(),
			TgID:         tgID,
			ProductCode:  product,
			AttemptCount: count,
			ForDate:      forDate,
			MeetingID:    meetingID,
			CreatedAt:    f.now,
		})
	}
	return nil
}

func (f *fakeStore) SumAttempts(_ context.Context, tgID int64, start, end time.Time) (models.PeriodStats, error) {
	stats := models.PeriodStats{ByProduct: map[string]int{}}
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return stats, nil
	}
	for _, row := range f.attempts {
		if row.TgID == tgID && inRange(row.ForDate, start, end) {
			stats.Total += row.AttemptCount
			stats.ByProduct[row.ProductCode] += row.AttemptCount
		}
	}
	return stats, nil
}

func (f *fakeStore) LinkedAttemptsCount(_ context.Context, tgID int64, start, end time.Time) (int, error) {
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return 0, nil
	}
	count := 0
	for _, row := range f.attempts {
		if row.TgID == tgID && row.MeetingID != nil && inRange(row.ForDate, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) SumAttemptsByAgent(_ context.Context, start, end time.Time) (map[int64]int, error) {
	sums := map[int64]int{}
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return sums, nil
	}
	for _, row := range f.attempts {
		if inRange(row.ForDate, start, end) {
			sums[row.TgID] += row.AttemptCount
		}
	}
	return sums, nil
}

func (f *fakeStore) CreateMeeting(_ context.Context, tgID int64, productCode string, forDate time.Time) (primitive.ObjectID, error) {
	meeting := models.Meeting{
		ID:          primitive.NewObjectID(),
		TgID:        tgID,
		ProductCode: productCode,
		ForDate:     calendar.DateOnly(forDate),
		CreatedAt:   f.now,
	}
	f.meetings = append(f.meetings, meeting)
	return meeting.ID, nil
}

func (f *fakeStore) CountMeetings(_ context.Context, tgID int64, start, end time.Time) (int, error) {
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return 0, nil
	}
	count := 0
	for _, m := range f.meetings {
		if m.TgID == tgID && inRange(m.ForDate, start, end) {
			count++
		}
	}
	return count, nil
}

func planKey(tgID int64, year, month int) string {
	return fmt.Sprintf("%d/%d-%02d", tgID, year, month)
}

func (f *fakeStore) GetOrCreate(_ context.Context, tgID int64, year, month, defaultValue int) (int, error) {
	key := planKey(tgID, year, month)
	if value, ok := f.plans[key]; ok {
		return value, nil
	}
	f.plans[key] = defaultValue
	return defaultValue, nil
}

func (f *fakeStore) Set(_ context.Context, tgID int64, year, month, value int) error {
	f.plans[planKey(tgID, year, month)] = value
	return nil
}

func (f *fakeStore) GetOrRegister(_ context.Context, tgID int64) (*models.Employee, error) {
	if emp, ok := f.employees[tgID]; ok {
		return &emp, nil
	}
	emp := models.Employee{
		ID:        primitive.NewObjectID(),
		TgID:      tgID,
		AgentName: fmt.Sprintf("agent?%d", tgID),
		Active:    true,
		CreatedAt: f.now,
	}
	f.employees[tgID] = emp
	return &emp, nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]models.Employee, error) {
	var out []models.Employee
	for _, emp := range f.employees {
		if emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveNamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	names := map[int64]string{}
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok && emp.Active {
			names[id] = emp.AgentName
		}
	}
	return names, nil
}

// registerEmployee seeds an employee with a fixed registration date and name.
func (f *fakeStore) registerEmployee(tgID int64, name string, createdAt time.Time) {
	f.employees[tgID] = models.Employee{
		ID:        primitive.NewObjectID(),
		TgID:      tgID,
		AgentName: name,
		Active:    true,
		CreatedAt: createdAt,
	}
}
