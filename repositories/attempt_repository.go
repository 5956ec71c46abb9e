package repository

import (
	"context"
	"time"

	"salesplan/calendar"
	"salesplan/metrics"
	"salesplan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptRepository interface {
	// RecordAttempts appends one row per product with a positive count.
	// Pairs with count <= 0 are skipped; an empty or all-zero map is a no-op.
	RecordAttempts(ctx context.Context, tgID int64, counts map[string]int, forDate time.Time, meetingID *primitive.ObjectID) error
	// SumAttempts sums attempt counts for the agent over [start, end],
	// total and per product. An inverted range yields zero values.
	SumAttempts(ctx context.Context, tgID int64, start, end time.Time) (models.PeriodStats, error)
	// LinkedAttemptsCount counts attempt rows (not summed counts) in range
	// that carry a meeting back-reference.
	LinkedAttemptsCount(ctx context.Context, tgID int64, start, end time.Time) (int, error)
	// SumAttemptsByAgent sums attempt counts per agent over [start, end],
	// across all agents.
	SumAttemptsByAgent(ctx context.Context, start, end time.Time) (map[int64]int, error)
}

type attemptRepository struct {
	collection *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) AttemptRepository {
	return &attemptRepository{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepository) RecordAttempts(ctx context.Context, tgID int64, counts map[string]int, forDate time.Time, meetingID *primitive.ObjectID) error {
	now := time.Now()
	forDate = calendar.DateOnly(forDate)

	rows := make([]interface{}, 0, len(counts))
	for productCode, count := range counts {
		if count <= 0 {
			continue
		}
		rows = append(rows, models.Attempt{
			TgID:         tgID,
			ProductCode:  productCode,
			AttemptCount: count,
			ForDate:      forDate,
			MeetingID:    meetingID,
			CreatedAt:    now,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := r.collection.InsertMany(ctx, rows)
	if err != nil {
		return err
	}
	metrics.AttemptRowsRecorded.Add(float64(len(rows)))
	return nil
}

func (r *attemptRepository) SumAttempts(ctx context.Context, tgID int64, start, end time.Time) (models.PeriodStats, error) {
	stats := models.PeriodStats{ByProduct: map[string]int{}}
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return stats, nil
	}

	filter := bson.M{
		"tg_id":    tgID,
		"for_date": bson.M{"$gte": start, "$lte": end},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return stats, err
	}
	defer cursor.Close(ctx)

	var rows []models.Attempt
	if err = cursor.All(ctx, &rows); err != nil {
		return stats, err
	}

	for _, row := range rows {
		stats.Total += row.AttemptCount
		stats.ByProduct[row.ProductCode] += row.AttemptCount
	}
	return stats, nil
}

func (r *attemptRepository) LinkedAttemptsCount(ctx context.Context, tgID int64, start, end time.Time) (int, error) {
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return 0, nil
	}

	filter := bson.M{
		"tg_id":      tgID,
		"for_date":   bson.M{"$gte": start, "$lte": end},
		"meeting_id": bson.M{"$exists": true, "$ne": nil},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *attemptRepository) SumAttemptsByAgent(ctx context.Context, start, end time.Time) (map[int64]int, error) {
	sums := map[int64]int{}
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return sums, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"for_date": bson.M{"$gte": start, "$lte": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$tg_id",
			"total": bson.M{"$sum": "$attempt_count"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TgID  int64 `bson:"_id"`
		Total int   `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	for _, row := range results {
		sums[row.TgID] = row.Total
	}
	return sums, nil
}
