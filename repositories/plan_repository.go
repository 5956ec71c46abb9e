package repository

import (
	"context"
	"time"

	"salesplan/metrics"
	"salesplan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanRepository interface {
	// GetOrCreate returns the stored plan value for (tgID, year, month),
	// creating it with defaultValue if absent. Concurrent first reads
	// resolve to a single winning row via the unique index plus
	// $setOnInsert; the caller's default may lose the race.
	GetOrCreate(ctx context.Context, tgID int64, year, month, defaultValue int) (int, error)
	// Set overwrites (or creates) the plan value for (tgID, year, month).
	// Admin tooling only.
	Set(ctx context.Context, tgID int64, year, month, value int) error
}

type planRepository struct {
	collection *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) PlanRepository {
	return &planRepository{
		collection: db.Collection("month_plans"),
	}
}

func (r *planRepository) GetOrCreate(ctx context.Context, tgID int64, year, month, defaultValue int) (int, error) {
	filter := bson.M{"tg_id": tgID, "year": year, "month": month}
	update := bson.M{
		"$setOnInsert": bson.M{
			"tg_id":      tgID,
			"year":       year,
			"month":      month,
			"plan_value": defaultValue,
			"created_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	switch {
	case err == nil:
		if res.UpsertedCount > 0 {
			metrics.MonthPlansCreated.Inc()
		}
	case upsertRaceLost(err):
		// A concurrent first read inserted the row between our filter match
		// and the upsert. Their row is the one to return.
	default:
		return 0, err
	}

	// Read back the winning row: with a concurrent creator our default may
	// have lost, and that is the value everyone must see.
	var plan models.MonthPlan
	if err := r.collection.FindOne(ctx, filter).Decode(&plan); err != nil {
		return 0, err
	}
	return plan.PlanValue, nil
}

// upsertRaceLost reports whether an upsert failed only because a
// concurrent creator won the unique-index race. That failure is
// recoverable: the winning row is read back instead.
func upsertRaceLost(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

func (r *planRepository) Set(ctx context.Context, tgID int64, year, month, value int) error {
	filter := bson.M{"tg_id": tgID, "year": year, "month": month}
	update := bson.M{
		"$set": bson.M{"plan_value": value},
		"$setOnInsert": bson.M{
			"tg_id":      tgID,
			"year":       year,
			"month":      month,
			"created_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
