// Package indexes declares the Mongo indexes the application depends on.
// Run via the CLI (pehnava db:index) after deploys that change this file.
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pehnava/pehnava/pkg/logger"
)

// activityTTLSeconds expires dashboard feed entries after 24 hours.
const activityTTLSeconds = 24 * 60 * 60

// Ensure creates every required index. CreateMany is idempotent for
// identical definitions, so re-running is safe.
func Ensure(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"products": {
			// The catalogue index: seller to owned product IDs.
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		"orders": {
			// Ownership-scoped reads select on item product refs.
			{Keys: bson.D{{Key: "orderItems.product", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"tryons": {
			// Analytics count by the denormalized owner.
			{Keys: bson.D{{Key: "admin", Value: 1}}},
		},
		"activities": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(activityTTLSeconds),
			},
		},
	}

	for collection, models := range specs {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		logger.Info("indexes ensured", "collection", collection, "indexes", names)
	}
	return nil
}
