package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
)

func TestOwnedProductIDsTracksCatalogue(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	svc := services.NewCatalogService(products)

	seller := primitive.NewObjectID()
	other := primitive.NewObjectID()
	p1 := seedProduct(products, seller, "Kurta", 45)
	seedProduct(products, other, "Scarf", 30)

	ids, err := svc.OwnedProductIDs(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{p1}, ids)

	// Unknown seller owns nothing.
	ids, err = svc.OwnedProductIDs(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, ids)

	// The set reflects deletions immediately.
	require.NoError(t, svc.DeleteProduct(ctx, seller, p1))
	ids, err = svc.OwnedProductIDs(ctx, seller)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCatalogService(&fakeProductStore{})
	owner := primitive.NewObjectID()

	err := svc.CreateProduct(ctx, owner, &models.Product{Name: "  "})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = svc.CreateProduct(ctx, owner, &models.Product{Name: "Kurta", Price: -1})
	assert.ErrorIs(t, err, services.ErrValidation)

	p := models.Product{Name: "Kurta", Price: 45}
	require.NoError(t, svc.CreateProduct(ctx, owner, &p))
	assert.Equal(t, owner, p.Owner)
	assert.False(t, p.ID.IsZero())
}

func TestUpdateProductEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	svc := services.NewCatalogService(products)

	owner := primitive.NewObjectID()
	id := seedProduct(products, owner, "Kurta", 45)

	update := models.Product{ID: id, Name: "Kurta Deluxe", Price: 55}
	err := svc.UpdateProduct(ctx, primitive.NewObjectID(), &update)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The owner field cannot be smuggled in through an update.
	update.Owner = primitive.NewObjectID()
	require.NoError(t, svc.UpdateProduct(ctx, owner, &update))
	stored, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, owner, stored.Owner)
	assert.Equal(t, "Kurta Deluxe", stored.Name)
}

func TestDeleteProductEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	svc := services.NewCatalogService(products)

	owner := primitive.NewObjectID()
	id := seedProduct(products, owner, "Kurta", 45)

	err := svc.DeleteProduct(ctx, primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, svc.DeleteProduct(ctx, owner, id))
	err = svc.DeleteProduct(ctx, owner, id)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOwnedSet(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	set := services.OwnedSet([]primitive.ObjectID{a, b, a})
	assert.Len(t, set, 2)
	_, ok := set[a]
	assert.True(t, ok)
	_, ok = set[primitive.NewObjectID()]
	assert.False(t, ok)

	assert.Empty(t, services.OwnedSet(nil))
}
