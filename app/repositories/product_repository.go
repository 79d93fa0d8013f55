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
	"github.com/pehnava/pehnava/pkg/collection"
	"github.com/pehnava/pehnava/pkg/database"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// ProductRepository handles document-store operations for Product.
// Products of every seller share one collection; seller scoping is done
// with query predicates, never with per-tenant collections.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection("products")
}

// All returns the full public catalogue, newest first.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	defer metrics.ObserveMongo("find", time.Now())

	var product models.Product
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, services.ErrNotFound
	}
	return product, err
}

// FindByOwner returns all products listed by one seller.
func (r *ProductRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Product, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// IDsByOwner returns just the identifiers of one seller's products, the
// catalogue index the ownership-scoped reads are built on. Always a live
// query: ownership can change between reads and a stale set would leak
// orders across tenants. An unknown seller yields an empty set.
func (r *ProductRepository) IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	defer metrics.ObserveMongo("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{"user": owner},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var docs []idDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return collection.Map(docs, func(d idDoc) primitive.ObjectID { return d.ID }), nil
}

type idDoc struct {
	ID primitive.ObjectID `bson:"_id"`
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveMongo("insert", time.Now())

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveMongo("update", time.Now())

	product.UpdatedAt = time.Now()
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return err
}

// Delete removes a product by primary key.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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
