package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// RANGE AGGREGATION: per-agent sums over [start, end]
	// Used by: SumAttempts, LinkedAttemptsCount
	attemptIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tg_id", Value: 1},
				{Key: "for_date", Value: 1},
			},
			Options: options.Index().SetName("idx_tg_id_for_date"),
		},
		// CROSS-AGENT AGGREGATION: ranking and leaderboard pipelines
		{
			Keys:    bson.D{{Key: "for_date", Value: 1}},
			Options: options.Index().SetName("idx_for_date"),
		},
	}
	if _, err := db.Collection("attempts").Indexes().CreateMany(ctx, attemptIndexes); err != nil {
		return fmt.Errorf("failed to create attempt indexes: %v", err)
	}

	// RANGE COUNT: CountMeetings
	meetingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tg_id", Value: 1},
				{Key: "for_date", Value: 1},
			},
			Options: options.Index().SetName("idx_tg_id_for_date"),
		},
	}
	if _, err := db.Collection("meetings").Indexes().CreateMany(ctx, meetingIndexes); err != nil {
		return fmt.Errorf("failed to create meeting indexes: %v", err)
	}

	// UNIQUENESS: backs the create-if-absent plan upsert; concurrent
	// first reads for one (agent, year, month) resolve to a single row.
	planIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tg_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetName("idx_tg_id_year_month_unique").SetUnique(true),
		},
	}
	if _, err := db.Collection("month_plans").Indexes().CreateMany(ctx, planIndexes); err != nil {
		return fmt.Errorf("failed to create plan indexes: %v", err)
	}

	// UNIQUENESS: one employee row per tg_id, backs GetOrRegister upsert
	employeeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tg_id", Value: 1}},
			Options: options.Index().SetName("idx_tg_id_unique").SetUnique(true),
		},
	}
	if _, err := db.Collection("employees").Indexes().CreateMany(ctx, employeeIndexes); err != nil {
		return fmt.Errorf("failed to create employee indexes: %v", err)
	}

	fmt.Println("Indexes created successfully")
	return nil
}
