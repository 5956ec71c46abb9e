package repository

import (
	"context"
	"fmt"
	"time"

	"salesplan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository interface {
	// GetOrRegister returns the employee row for tgID, creating it on
	// first contact. The stored created_at marks when the agent first
	// existed and gates period-over-period deltas.
	GetOrRegister(ctx context.Context, tgID int64) (*models.Employee, error)
	// ListActive returns all active employees.
	ListActive(ctx context.Context) ([]models.Employee, error)
	// ActiveNamesByIDs maps tg_id to agent_name for the given active agents.
	ActiveNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type employeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) EmployeeRepository {
	return &employeeRepository{
		collection: db.Collection("employees"),
	}
}

func (r *employeeRepository) GetOrRegister(ctx context.Context, tgID int64) (*models.Employee, error) {
	filter := bson.M{"tg_id": tgID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"tg_id":      tgID,
			"agent_name": fmt.Sprintf("agent?%d", tgID),
			"active":     true,
			"created_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var emp models.Employee
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) ActiveNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := map[int64]string{}
	if len(ids) == 0 {
		return names, nil
	}

	filter := bson.M{"tg_id": bson.M{"$in": ids}, "active": true}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}

	for _, emp := range employees {
		names[emp.TgID] = emp.AgentName
	}
	return names, nil
}
