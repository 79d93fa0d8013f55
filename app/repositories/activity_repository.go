package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/database"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// ActivityRepository handles document-store operations for Activity.
// Entries are always queried by exact owner match, never cross-tenant.
// Expiry is the TTL index's job (see database/indexes).
type ActivityRepository struct{}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) col() *mongo.Collection {
	return database.Collection("activities")
}

// Insert appends an activity entry.
func (r *ActivityRepository) Insert(ctx context.Context, activity *models.Activity) error {
	defer metrics.ObserveMongo("insert", time.Now())

	activity.CreatedAt = time.Now()

	res, err := r.col().InsertOne(ctx, activity)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		activity.ID = id
	}
	return nil
}

// RecentByOwner returns the owner's newest entries, capped at limit.
func (r *ActivityRepository) RecentByOwner(ctx context.Context, owner primitive.ObjectID, limit int64) ([]models.Activity, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{"user": owner},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}

	var activities []models.Activity
	if err := cur.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
