package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is one free-form agent comment. Append-only; content arrives
// already sanitized by the caller.
type Note struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TgID      int64              `json:"tg_id" bson:"tg_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
