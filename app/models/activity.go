package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is an append-only dashboard log entry scoped to one seller.
// Always queried by exact owner match, never cross-tenant. Entries expire
// after 24 hours via a TTL index (see database/indexes).
type Activity struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Owner     primitive.ObjectID `json:"user" bson:"user"`
	Label     string             `json:"label" bson:"label"`
	Icon      string             `json:"icon" bson:"icon"`
	Color     string             `json:"color" bson:"color"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
