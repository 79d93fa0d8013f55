package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/database"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// OrderRepository handles document-store operations for Order.
//
// Orders live whole in one shared collection; a single order can touch
// several sellers. Seller-scoped reads select orders whose item list
// intersects the seller's product set and never write derived views back.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) col() *mongo.Collection {
	return database.Collection("orders")
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveMongo("insert", time.Now())

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	defer metrics.ObserveMongo("find", time.Now())

	var order models.Order
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, services.ErrNotFound
	}
	return order, err
}

// FindByBuyer returns a buyer's orders, newest first, excluding those the
// buyer has cleared from their own view.
func (r *OrderRepository) FindByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx,
		bson.M{"user": buyer, "isClearedByUser": false},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindTouchingProducts returns every order whose item list references at
// least one of the given product IDs, newest first. Set intersection, not
// exact match: an order shows up for every seller it touches.
func (r *OrderRepository) FindTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx,
		bson.M{"orderItems.product": bson.M{"$in": productIDs}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CountTouchingProducts counts orders whose item list references at least
// one of the given product IDs.
func (r *OrderRepository) CountTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) (int64, error) {
	defer metrics.ObserveMongo("count", time.Now())

	return r.col().CountDocuments(ctx,
		bson.M{"orderItems.product": bson.M{"$in": productIDs}})
}

// DistinctBuyersTouchingProducts returns the distinct buyer IDs across
// orders referencing any of the given products.
func (r *OrderRepository) DistinctBuyersTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	defer metrics.ObserveMongo("distinct", time.Now())

	raw, err := r.col().Distinct(ctx, "user",
		bson.M{"orderItems.product": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}

	buyers := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			buyers = append(buyers, id)
		}
	}
	return buyers, nil
}

// Save persists the mutable fields of an existing order (status and
// payment/delivery flags). The item list is immutable after checkout and
// is written only by Create.
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveMongo("update", time.Now())

	order.UpdatedAt = time.Now()
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// ClearForBuyer flags all of a buyer's Delivered/Cancelled orders as
// cleared in a single conditional bulk update. Pending and Accepted
// orders are untouched; nothing is deleted. Returns the number of orders
// affected.
func (r *OrderRepository) ClearForBuyer(ctx context.Context, buyer primitive.ObjectID) (int64, error) {
	defer metrics.ObserveMongo("update", time.Now())

	res, err := r.col().UpdateMany(ctx,
		bson.M{
			"user":   buyer,
			"status": bson.M{"$in": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled}},
		},
		bson.M{"$set": bson.M{"isClearedByUser": true, "updatedAt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete permanently removes an order by primary key.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveMongo("delete", time.Now())

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
