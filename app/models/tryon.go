package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TryOnEvent records a shopper virtually previewing a product. Events are
// append-only and never updated.
//
// Admin is the product's owner copied in at event time, so analytics
// stay attributable even if the product is later reassigned or deleted.
type TryOnEvent struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	User      *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"` // nil for anonymous try-ons
	Product   primitive.ObjectID  `json:"product" bson:"product"`
	Admin     primitive.ObjectID  `json:"admin" bson:"admin"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}
