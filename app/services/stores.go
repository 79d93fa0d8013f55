package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
)

// The service layer talks to persistence through these small interfaces.
// app/repositories provides the Mongo-backed implementations; tests use
// in-memory fakes.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Product, error)
	IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error)
	FindTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error)
	CountTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) (int64, error)
	DistinctBuyersTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]primitive.ObjectID, error)
	Save(ctx context.Context, order *models.Order) error
	ClearForBuyer(ctx context.Context, buyer primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TryOnStore interface {
	Insert(ctx context.Context, event *models.TryOnEvent) error
	CountByAdmin(ctx context.Context, admin primitive.ObjectID) (int64, error)
}

type ActivityStore interface {
	Insert(ctx context.Context, activity *models.Activity) error
	RecentByOwner(ctx context.Context, owner primitive.ObjectID, limit int64) ([]models.Activity, error)
}
