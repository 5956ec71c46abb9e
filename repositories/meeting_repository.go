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

type MeetingRepository interface {
	// CreateMeeting inserts exactly one meeting row and returns its id.
	// Concurrent calls for the same agent each produce an independent row.
	CreateMeeting(ctx context.Context, tgID int64, productCode string, forDate time.Time) (primitive.ObjectID, error)
	// CountMeetings counts the agent's meetings with for_date in [start, end].
	CountMeetings(ctx context.Context, tgID int64, start, end time.Time) (int, error)
}

type meetingRepository struct {
	collection *mongo.Collection
}

func NewMeetingRepository(db *mongo.Database) MeetingRepository {
	return &meetingRepository{
		collection: db.Collection("meetings"),
	}
}

func (r *meetingRepository) CreateMeeting(ctx context.Context, tgID int64, productCode string, forDate time.Time) (primitive.ObjectID, error) {
	meeting := models.Meeting{
		ID:          primitive.NewObjectID(),
		TgID:        tgID,
		ProductCode: productCode,
		ForDate:     calendar.DateOnly(forDate),
		CreatedAt:   time.Now(),
	}

	_, err := r.collection.InsertOne(ctx, meeting)
	if err != nil {
		return primitive.NilObjectID, err
	}
	metrics.MeetingsCreated.Inc()
	return meeting.ID, nil
}

func (r *meetingRepository) CountMeetings(ctx context.Context, tgID int64, start, end time.Time) (int, error) {
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.After(end) {
		return 0, nil
	}

	filter := bson.M{
		"tg_id":    tgID,
		"for_date": bson.M{"$gte": start, "$lte": end},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
