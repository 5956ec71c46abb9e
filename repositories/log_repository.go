package repository

import (
	"context"
	"log"
	"time"

	"salesplan/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type LogRepository interface {
	// Log records an action row best-effort. Insert failures are logged
	// locally and swallowed; the user path must never see them.
	Log(ctx context.Context, tgID *int64, action string, payload map[string]interface{})
}

type logRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(db *mongo.Database) LogRepository {
	return &logRepository{
		collection: db.Collection("logs"),
	}
}

func (r *logRepository) Log(ctx context.Context, tgID *int64, action string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	entry := models.LogEntry{
		TgID:      tgID,
		Action:    action,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(insertCtx, entry); err != nil {
		log.Printf("action log insert failed (action=%s): %v", action, err)
	}
}
