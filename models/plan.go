package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthPlan is the monthly attempt target for one agent. Keyed by
// (tg_id, year, month) with a unique index; created lazily with a default
// on first read and stable until an admin overwrites it.
type MonthPlan struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TgID      int64              `json:"tg_id" bson:"tg_id"`
	Year      int                `json:"year" bson:"year"`
	Month     int                `json:"month" bson:"month"`
	PlanValue int                `json:"plan_value" bson:"plan_value" validate:"min=1"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// PlanBreakdown is the derived plan picture for one agent on one date.
// Only primitive values so the struct can be embedded verbatim in report
// and prompt payloads.
type PlanBreakdown struct {
	PlanMonth       int `json:"plan_month"`
	PlanDay         int `json:"plan_day"`
	PlanWeek        int `json:"plan_week"`
	RRMonth         int `json:"rr_month"`
	FactMonth       int `json:"fact_month"`
	WorkdaysMonth   int `json:"workdays_month"`
	WorkdaysElapsed int `json:"workdays_elapsed"`
}
