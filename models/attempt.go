package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt is one logged sales attempt: an agent proposed a product to a
// client with a count, attributed to a business day. Rows are append-only
// and additive per (agent, date, product); they are never updated.
type Attempt struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TgID         int64               `json:"tg_id" bson:"tg_id" validate:"required"`
	ProductCode  string              `json:"product_code" bson:"product_code" validate:"required"`
	AttemptCount int                 `json:"attempt_count" bson:"attempt_count" validate:"min=1"`
	ForDate      time.Time           `json:"for_date" bson:"for_date"`
	MeetingID    *primitive.ObjectID `json:"meeting_id,omitempty" bson:"meeting_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
}

// Meeting is one logged client visit with a single delivery product.
// Created once, immutable thereafter. Attempts may back-reference it.
type Meeting struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TgID        int64              `json:"tg_id" bson:"tg_id" validate:"required"`
	ProductCode string             `json:"product_code" bson:"product_code" validate:"required"`
	ForDate     time.Time          `json:"for_date" bson:"for_date"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
