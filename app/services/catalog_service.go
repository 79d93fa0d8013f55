package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/cache"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = 5 * time.Minute
)

// CatalogService manages the shared product catalogue and answers the
// one question everything else hangs off: which products does a seller
// own right now?
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns the full public catalogue. This is the only read
// in the catalogue that may be served from cache: it is not
// ownership-scoped, so staleness costs freshness, not isolation.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(productListCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	cache.Set(productListCacheKey, products, productListCacheTTL)
	return products, nil
}

// GetProduct returns one product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ListOwnProducts returns the seller's own listings.
func (s *CatalogService) ListOwnProducts(ctx context.Context, owner primitive.ObjectID) ([]models.Product, error) {
	return s.products.FindByOwner(ctx, owner)
}

// OwnedProductIDs returns the seller's current product IDs, straight from
// the store on every call. Never cached: every ownership-scoped read
// depends on this set being current.
func (s *CatalogService) OwnedProductIDs(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.products.IDsByOwner(ctx, owner)
}

// OwnedSet builds a membership set from a product ID slice.
func OwnedSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// CreateProduct adds a listing to the catalogue under the given owner.
func (s *CatalogService) CreateProduct(ctx context.Context, owner primitive.ObjectID, product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	product.Owner = owner
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}

	cache.Del(productListCacheKey)
	return nil
}

// UpdateProduct applies changes to one of the seller's own listings.
// Editing another seller's product is forbidden.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor primitive.ObjectID, product *models.Product) error {
	existing, err := s.products.FindByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing.Owner != actor {
		return ErrForbidden
	}

	product.Owner = existing.Owner
	product.CreatedAt = existing.CreatedAt
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}

	cache.Del(productListCacheKey)
	return nil
}

// DeleteProduct removes one of the seller's own listings. Orders keep
// their captured item snapshots; only future ownership-scoped reads stop
// seeing the product.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor, id primitive.ObjectID) error {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Owner != actor {
		return ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	cache.Del(productListCacheKey)
	return nil
}
