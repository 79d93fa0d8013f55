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

func newAnalytics() (*services.AnalyticsService, *fakeProductStore, *fakeOrderStore, *fakeTryOnStore) {
	products := &fakeProductStore{}
	orders := &fakeOrderStore{}
	tryons := &fakeTryOnStore{}
	return services.NewAnalyticsService(products, orders, tryons), products, orders, tryons
}

func TestSellerSummaryZeroActivity(t *testing.T) {
	svc, _, _, _ := newAnalytics()

	summary, err := svc.SellerSummary(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalTryOns)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.NewCustomers)
	assert.Zero(t, summary.ConversionRate)
}

func TestSellerSummaryCountsAndRate(t *testing.T) {
	ctx := context.Background()
	svc, products, orders, _ := newAnalytics()

	seller := primitive.NewObjectID()
	p1 := seedProduct(products, seller, "Kurta", 45)
	p2 := seedProduct(products, seller, "Saree", 80)

	// Three try-ons against the seller's products.
	for _, pid := range []primitive.ObjectID{p1, p2, p1} {
		_, err := svc.LogTryOn(ctx, nil, pid)
		require.NoError(t, err)
	}

	// Two orders from the same buyer plus one from another.
	repeat := primitive.NewObjectID()
	for _, buyer := range []primitive.ObjectID{repeat, repeat, primitive.NewObjectID()} {
		require.NoError(t, orders.Create(ctx, &models.Order{
			Buyer:      buyer,
			OrderItems: []models.OrderItem{{Product: p1, Price: 45, Qty: 1}},
		}))
	}

	summary, err := svc.SellerSummary(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalTryOns)
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(2), summary.NewCustomers)
	assert.Equal(t, 100.0, summary.ConversionRate)

	// Distinct buyers never exceed orders.
	assert.LessOrEqual(t, summary.NewCustomers, summary.TotalOrders)
}

func TestSellerSummaryRateRounding(t *testing.T) {
	ctx := context.Background()
	svc, products, orders, _ := newAnalytics()

	seller := primitive.NewObjectID()
	p := seedProduct(products, seller, "Dupatta", 15)

	for i := 0; i < 3; i++ {
		_, err := svc.LogTryOn(ctx, nil, p)
		require.NoError(t, err)
	}
	require.NoError(t, orders.Create(ctx, &models.Order{
		Buyer:      primitive.NewObjectID(),
		OrderItems: []models.OrderItem{{Product: p, Price: 15, Qty: 1}},
	}))

	summary, err := svc.SellerSummary(ctx, seller)
	require.NoError(t, err)
	// 1 order / 3 try-ons = 33.333..., rounded to one decimal.
	assert.Equal(t, 33.3, summary.ConversionRate)
}

func TestSellerSummaryZeroTryOnsWithOrders(t *testing.T) {
	ctx := context.Background()
	svc, products, orders, _ := newAnalytics()

	seller := primitive.NewObjectID()
	p := seedProduct(products, seller, "Kurta", 45)
	require.NoError(t, orders.Create(ctx, &models.Order{
		Buyer:      primitive.NewObjectID(),
		OrderItems: []models.OrderItem{{Product: p, Price: 45, Qty: 1}},
	}))

	summary, err := svc.SellerSummary(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalOrders)
	// No division blowup: zero try-ons pins the rate to 0.
	assert.Zero(t, summary.ConversionRate)
}

func TestSellerSummaryRateCanExceedHundred(t *testing.T) {
	ctx := context.Background()
	svc, products, orders, _ := newAnalytics()

	seller := primitive.NewObjectID()
	p := seedProduct(products, seller, "Lehenga", 200)

	_, err := svc.LogTryOn(ctx, nil, p)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, orders.Create(ctx, &models.Order{
			Buyer:      primitive.NewObjectID(),
			OrderItems: []models.OrderItem{{Product: p, Price: 200, Qty: 1}},
		}))
	}

	summary, err := svc.SellerSummary(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, 300.0, summary.ConversionRate)
}

func TestSellerSummaryIsolatesSellers(t *testing.T) {
	ctx := context.Background()
	svc, products, orders, _ := newAnalytics()

	sellerA := primitive.NewObjectID()
	sellerB := primitive.NewObjectID()
	pA := seedProduct(products, sellerA, "Sneakers", 20)
	pB := seedProduct(products, sellerB, "Scarf", 30)

	// One shared order touching both sellers.
	require.NoError(t, orders.Create(ctx, &models.Order{
		Buyer: primitive.NewObjectID(),
		OrderItems: []models.OrderItem{
			{Product: pA, Price: 20, Qty: 1},
			{Product: pB, Price: 30, Qty: 1},
		},
	}))
	_, err := svc.LogTryOn(ctx, nil, pA)
	require.NoError(t, err)

	a, err := svc.SellerSummary(ctx, sellerA)
	require.NoError(t, err)
	b, err := svc.SellerSummary(ctx, sellerB)
	require.NoError(t, err)

	// The shared order counts once for each seller it touches.
	assert.Equal(t, int64(1), a.TotalOrders)
	assert.Equal(t, int64(1), b.TotalOrders)
	// The try-on stays with seller A only.
	assert.Equal(t, int64(1), a.TotalTryOns)
	assert.Zero(t, b.TotalTryOns)
}

func TestLogTryOnRequiresProduct(t *testing.T) {
	svc, _, _, tryons := newAnalytics()

	_, err := svc.LogTryOn(context.Background(), nil, primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, tryons.events)
}

func TestLogTryOnDenormalizesOwner(t *testing.T) {
	ctx := context.Background()
	svc, products, _, tryons := newAnalytics()

	seller := primitive.NewObjectID()
	p := seedProduct(products, seller, "Kurta", 45)
	shopper := primitive.NewObjectID()

	event, err := svc.LogTryOn(ctx, &shopper, p)
	require.NoError(t, err)
	assert.Equal(t, seller, event.Admin)
	assert.Equal(t, p, event.Product)
	require.NotNil(t, event.User)
	assert.Equal(t, shopper, *event.User)

	// Reassigning the product later must not rewrite past events.
	updated := products.products[0]
	updated.Owner = primitive.NewObjectID()
	require.NoError(t, products.Update(ctx, &updated))

	n, err := tryons.CountByAdmin(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogTryOnAnonymous(t *testing.T) {
	svc, products, _, _ := newAnalytics()
	p := seedProduct(products, primitive.NewObjectID(), "Saree", 80)

	event, err := svc.LogTryOn(context.Background(), nil, p)
	require.NoError(t, err)
	assert.Nil(t, event.User)
}
