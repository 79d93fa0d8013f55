package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/auth"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo inserts two seller accounts with a small catalogue each, for
// local development. Skips entirely when a demo seller already exists.
func SeedDemo(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	n, err := users.CountDocuments(ctx, bson.M{"email": "meera@pehnava.dev"})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	now := time.Now()
	sellers := []models.User{
		{Name: "Meera Boutique", Email: "meera@pehnava.dev", Password: hash, Role: models.RoleAdmin, CreatedAt: now, UpdatedAt: now},
		{Name: "Arjun Styles", Email: "arjun@pehnava.dev", Password: hash, Role: models.RoleAdmin, CreatedAt: now, UpdatedAt: now},
	}

	catalogues := [][]models.Product{
		{
			{Name: "Silk Saree", Brand: "Meera", Category: "Saree", Price: 120, CountInStock: 8},
			{Name: "Cotton Kurta", Brand: "Meera", Category: "Kurta", Price: 45, CountInStock: 20},
		},
		{
			{Name: "Denim Jacket", Brand: "Arjun", Category: "Jacket", Price: 80, CountInStock: 12},
			{Name: "Wool Scarf", Brand: "Arjun", Category: "Scarf", Price: 30, CountInStock: 25},
		},
	}

	for i := range sellers {
		res, err := users.InsertOne(ctx, sellers[i])
		if err != nil {
			return err
		}
		owner := res.InsertedID.(primitive.ObjectID)

		for _, p := range catalogues[i] {
			p.Owner = owner
			p.CreatedAt = now
			p.UpdatedAt = now
			if _, err := db.Collection("products").InsertOne(ctx, p); err != nil {
				return err
			}
		}
	}

	buyerHash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	_, err = users.InsertOne(ctx, models.User{
		Name: "Asha", Email: "asha@pehnava.dev", Password: buyerHash,
		Role: models.RoleUser, CreatedAt: now, UpdatedAt: now,
	})
	return err
}
