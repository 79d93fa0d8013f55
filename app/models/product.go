package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry. Every product belongs to exactly one
// seller (Owner); ownership is set at creation and only the owner may
// mutate or delete it. Products from all sellers live in one shared
// collection; seller-scoped views are derived at read time, never stored.
type Product struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Owner        primitive.ObjectID `json:"user" bson:"user"`
	Name         string             `json:"name" bson:"name"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	Brand        string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64            `json:"price" bson:"price"`
	CountInStock int                `json:"countInStock" bson:"countInStock"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
