package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a registered field agent. CreatedAt marks when the agent
// first appeared; period-over-period deltas are suppressed for periods
// that start before it.
type Employee struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TgID      int64              `json:"tg_id" bson:"tg_id"`
	AgentName string             `json:"agent_name" bson:"agent_name"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// LogEntry is a best-effort action log row. Writes are fire-and-forget;
// a failed insert must never surface to the user path.
type LogEntry struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	TgID      *int64                 `json:"tg_id,omitempty" bson:"tg_id,omitempty"`
	Action    string                 `json:"action" bson:"action"`
	Payload   map[string]interface{} `json:"payload" bson:"payload"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}
