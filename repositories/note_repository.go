package repository

import (
	"context"
	"time"

	"salesplan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultNotesLimit caps a notes listing when the caller passes none.
const DefaultNotesLimit = 20

type NoteRepository interface {
	// AddNote appends one note row for the agent.
	AddNote(ctx context.Context, tgID int64, content string) error
	// ListNotes returns the agent's most recent notes, newest first,
	// capped at limit (DefaultNotesLimit when limit <= 0).
	ListNotes(ctx context.Context, tgID int64, limit int) ([]models.Note, error)
}

type noteRepository struct {
	collection *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{
		collection: db.Collection("notes"),
	}
}

func (r *noteRepository) AddNote(ctx context.Context, tgID int64, content string) error {
	note := models.Note{
		TgID:      tgID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, note)
	return err
}

func (r *noteRepository) ListNotes(ctx context.Context, tgID int64, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = DefaultNotesLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"tg_id": tgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
