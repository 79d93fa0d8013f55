package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
)

func TestScopeOrderSplitsMultiSellerOrder(t *testing.T) {
	sneakers := primitive.NewObjectID() // seller A, $20
	scarf := primitive.NewObjectID()    // seller B, $30

	order := models.Order{
		ID:    primitive.NewObjectID(),
		Buyer: primitive.NewObjectID(),
		OrderItems: []models.OrderItem{
			{Product: sneakers, Name: "Sneakers", Price: 20, Qty: 1},
			{Product: scarf, Name: "Scarf", Price: 30, Qty: 1},
		},
		TotalPrice: 50,
		Status:     models.StatusPending,
	}

	viewA, ok := services.ScopeOrder(order, services.OwnedSet([]primitive.ObjectID{sneakers}))
	require.True(t, ok)
	require.Len(t, viewA.OrderItems, 1)
	assert.Equal(t, "Sneakers", viewA.OrderItems[0].Name)
	assert.Equal(t, 20.0, viewA.TotalPrice)

	viewB, ok := services.ScopeOrder(order, services.OwnedSet([]primitive.ObjectID{scarf}))
	require.True(t, ok)
	require.Len(t, viewB.OrderItems, 1)
	assert.Equal(t, "Scarf", viewB.OrderItems[0].Name)
	assert.Equal(t, 30.0, viewB.TotalPrice)

	// Both views share the order's identity and status.
	assert.Equal(t, order.ID, viewA.ID)
	assert.Equal(t, order.ID, viewB.ID)

	// The input order is untouched.
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, 50.0, order.TotalPrice)
}

func TestScopeOrderQuantityAndNoOverlap(t *testing.T) {
	mine := primitive.NewObjectID()
	theirs := primitive.NewObjectID()

	order := models.Order{
		OrderItems: []models.OrderItem{
			{Product: mine, Price: 12.5, Qty: 3},
			{Product: theirs, Price: 99, Qty: 1},
		},
	}

	view, ok := services.ScopeOrder(order, services.OwnedSet([]primitive.ObjectID{mine}))
	require.True(t, ok)
	assert.Equal(t, 37.5, view.TotalPrice)

	_, ok = services.ScopeOrder(order, services.OwnedSet(nil))
	assert.False(t, ok)

	_, ok = services.ScopeOrder(order, services.OwnedSet([]primitive.ObjectID{primitive.NewObjectID()}))
	assert.False(t, ok)
}

func TestTransitionLifecycle(t *testing.T) {
	now := time.Now()

	order := models.Order{Status: models.StatusPending}
	require.NoError(t, services.Transition(&order, models.StatusAccepted, now))
	assert.Equal(t, models.StatusAccepted, order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)

	require.NoError(t, services.Transition(&order, models.StatusDelivered, now))
	assert.True(t, order.IsDelivered)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.DeliveredAt)
	require.NotNil(t, order.PaidAt)

	// Terminal: no further moves, not even a repeat.
	err := services.Transition(&order, models.StatusAccepted, now)
	assert.ErrorIs(t, err, services.ErrConflict)
	err = services.Transition(&order, models.StatusDelivered, now)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTransitionCancelledIsTerminal(t *testing.T) {
	order := models.Order{Status: models.StatusAccepted}
	require.NoError(t, services.Transition(&order, models.StatusCancelled, time.Now()))
	assert.True(t, order.Status.Terminal())
	assert.False(t, order.IsPaid)

	err := services.Transition(&order, models.StatusPending, time.Now())
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTransitionPreservesEarlierPayment(t *testing.T) {
	paidAt := time.Now().Add(-24 * time.Hour)
	order := models.Order{Status: models.StatusAccepted, IsPaid: true, PaidAt: &paidAt}

	require.NoError(t, services.Transition(&order, models.StatusDelivered, time.Now()))
	assert.True(t, order.IsPaid)
	assert.Equal(t, paidAt, *order.PaidAt)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	order := models.Order{Status: models.StatusPending}
	err := services.Transition(&order, models.OrderStatus("Shipped"), time.Now())
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestCreateOrderComputesTotals(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, products)

	seller := primitive.NewObjectID()
	p1 := seedProduct(products, seller, "Kurta", 45)
	buyer := primitive.NewObjectID()

	order := models.Order{
		OrderItems:    []models.OrderItem{{Product: p1, Name: "Kurta", Price: 45, Qty: 2}},
		TaxPrice:      5,
		ShippingPrice: 10,
		TotalPrice:    1, // client-sent garbage, must be overwritten
	}
	require.NoError(t, svc.CreateOrder(ctx, buyer, &order))

	assert.Equal(t, buyer, order.Buyer)
	assert.Equal(t, 90.0, order.ItemsPrice)
	assert.Equal(t, 105.0, order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.IsPaid)
}

func TestCreateOrderRejectsEmptyAndUnknown(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	svc := services.NewOrderService(&fakeOrderStore{}, products)
	buyer := primitive.NewObjectID()

	err := svc.CreateOrder(ctx, buyer, &models.Order{})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = svc.CreateOrder(ctx, buyer, &models.Order{
		OrderItems: []models.OrderItem{{Product: primitive.NewObjectID(), Price: 10, Qty: 1}},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestListSellerOrdersScopesEachOrder(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, products)

	sellerA := primitive.NewObjectID()
	sellerB := primitive.NewObjectID()
	pA := seedProduct(products, sellerA, "Sneakers", 20)
	pB := seedProduct(products, sellerB, "Scarf", 30)

	buyer := primitive.NewObjectID()
	require.NoError(t, orders.Create(ctx, &models.Order{
		Buyer: buyer,
		OrderItems: []models.OrderItem{
			{Product: pA, Name: "Sneakers", Price: 20, Qty: 1},
			{Product: pB, Name: "Scarf", Price: 30, Qty: 1},
		},
		TotalPrice: 50,
	}))
	require.NoError(t, orders.Create(ctx, &models.Order{
		Buyer:      buyer,
		OrderItems: []models.OrderItem{{Product: pB, Name: "Scarf", Price: 30, Qty: 2}},
		TotalPrice: 60,
	}))

	viewsA, err := svc.ListSellerOrders(ctx, sellerA)
	require.NoError(t, err)
	require.Len(t, viewsA, 1)
	assert.Equal(t, 20.0, viewsA[0].TotalPrice)

	viewsB, err := svc.ListSellerOrders(ctx, sellerB)
	require.NoError(t, err)
	require.Len(t, viewsB, 2)

	// A seller with no products sees nothing.
	views, err := svc.ListSellerOrders(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUpdateStatusRequiresOwnedItem(t *testing.T) {
	ctx := context.Background()
	products := &fakeProductStore{}
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, products)

	seller := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	p := seedProduct(products, seller, "Kurta", 45)

	order := models.Order{
		Buyer:      primitive.NewObjectID(),
		OrderItems: []models.OrderItem{{Product: p, Price: 45, Qty: 1}},
		Status:     models.StatusPending,
	}
	require.NoError(t, orders.Create(ctx, &order))

	_, err := svc.UpdateStatus(ctx, stranger, order.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := svc.UpdateStatus(ctx, seller, order.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.True(t, updated.IsDelivered)
	assert.True(t, updated.IsPaid)

	// The change is persisted on the shared order.
	stored, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestClearOrdersOnlyHidesFinishedOrders(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, &fakeProductStore{})

	buyer := primitive.NewObjectID()
	p := primitive.NewObjectID()
	item := []models.OrderItem{{Product: p, Price: 10, Qty: 1}}

	pending := models.Order{Buyer: buyer, OrderItems: item, Status: models.StatusPending}
	accepted := models.Order{Buyer: buyer, OrderItems: item, Status: models.StatusAccepted}
	delivered := models.Order{Buyer: buyer, OrderItems: item, Status: models.StatusDelivered}
	cancelled := models.Order{Buyer: buyer, OrderItems: item, Status: models.StatusCancelled}
	for _, o := range []*models.Order{&pending, &accepted, &delivered, &cancelled} {
		require.NoError(t, orders.Create(ctx, o))
	}

	n, err := svc.ClearOrders(ctx, buyer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	remaining, err := svc.ListBuyerOrders(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	for _, o := range remaining {
		assert.False(t, o.Status.Terminal())
	}

	// Clearing again is a no-op.
	n, err = svc.ClearOrders(ctx, buyer)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteOrderIsUnconditional(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, &fakeProductStore{})

	order := models.Order{
		Buyer:      primitive.NewObjectID(),
		OrderItems: []models.OrderItem{{Product: primitive.NewObjectID(), Price: 10, Qty: 1}},
		Status:     models.StatusPending, // not terminal, still deletable
	}
	require.NoError(t, orders.Create(ctx, &order))

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
	_, err := orders.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = svc.DeleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetBuyerOrderHidesOthers(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, &fakeProductStore{})

	owner := primitive.NewObjectID()
	order := models.Order{
		Buyer:      owner,
		OrderItems: []models.OrderItem{{Product: primitive.NewObjectID(), Price: 10, Qty: 1}},
	}
	require.NoError(t, orders.Create(ctx, &order))

	got, err := svc.GetBuyerOrder(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetBuyerOrder(ctx, primitive.NewObjectID(), order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestConfirmPaymentAcceptsOrder(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrderStore{}
	svc := services.NewOrderService(orders, &fakeProductStore{})

	buyer := primitive.NewObjectID()
	order := models.Order{
		Buyer:      buyer,
		OrderItems: []models.OrderItem{{Product: primitive.NewObjectID(), Price: 10, Qty: 1}},
		Status:     models.StatusPending,
	}
	require.NoError(t, orders.Create(ctx, &order))

	updated, err := svc.ConfirmPayment(ctx, buyer, order.ID, models.PaymentResult{ID: "pi_123", Status: "succeeded"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.True(t, updated.IsPaid)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, "pi_123", updated.PaymentResult.ID)

	// A terminal order cannot be paid again.
	updated.Status = models.StatusCancelled
	require.NoError(t, orders.Save(ctx, &updated))
	_, err = svc.ConfirmPayment(ctx, buyer, order.ID, models.PaymentResult{})
	assert.ErrorIs(t, err, services.ErrConflict)
}
