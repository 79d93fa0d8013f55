package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/database"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// TryOnRepository handles document-store operations for TryOnEvent.
// Events are append-only; repeat try-ons each produce a fresh event.
type TryOnRepository struct{}

func NewTryOnRepository() *TryOnRepository {
	return &TryOnRepository{}
}

func (r *TryOnRepository) col() *mongo.Collection {
	return database.Collection("tryons")
}

// Insert appends a try-on event.
func (r *TryOnRepository) Insert(ctx context.Context, event *models.TryOnEvent) error {
	defer metrics.ObserveMongo("insert", time.Now())

	event.CreatedAt = time.Now()

	res, err := r.col().InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

// CountByAdmin counts events attributed to one seller via the owner
// denormalized at event time. Later ownership changes do not rewrite
// history.
func (r *TryOnRepository) CountByAdmin(ctx context.Context, admin primitive.ObjectID) (int64, error) {
	defer metrics.ObserveMongo("count", time.Now())

	return r.col().CountDocuments(ctx, bson.M{"admin": admin})
}
