package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// OrderService owns checkout, the order lifecycle and the per-seller
// order views. Orders are stored whole; every seller-facing read goes
// through ScopeOrder so a seller only ever sees their slice of a
// multi-seller order.
type OrderService struct {
	orders   OrderStore
	products ProductStore
}

func NewOrderService(orders OrderStore, products ProductStore) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// ScopeOrder reduces an order to one seller's view: the item list keeps
// only products in owned, and TotalPrice is recomputed as the sum of
// price times quantity over the remaining items. ItemsPrice, TaxPrice
// and ShippingPrice stay whole-order figures. The second return is false
// when the order shares no items with owned.
//
// The input is copied, never mutated. The stored order keeps its full
// item list and full total.
func ScopeOrder(order models.Order, owned map[primitive.ObjectID]struct{}) (models.Order, bool) {
	items := make([]models.OrderItem, 0, len(order.OrderItems))
	total := 0.0
	for _, item := range order.OrderItems {
		if _, ok := owned[item.Product]; ok {
			items = append(items, item)
			total += item.Price * float64(item.Qty)
		}
	}
	if len(items) == 0 {
		return models.Order{}, false
	}

	order.OrderItems = items
	order.TotalPrice = total
	return order, true
}

// Transition applies a status change to the order in place.
//
// Terminal states (Delivered, Cancelled) accept no further transitions;
// between non-terminal states any move is allowed. Delivered marks the
// order both delivered and paid: cash-on-delivery orders settle at the
// door. An earlier payment timestamp is preserved.
func Transition(order *models.Order, to models.OrderStatus, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, string(to))
	}
	if order.Status.Terminal() {
		return fmt.Errorf("%w: order is already %s", ErrConflict, string(order.Status))
	}

	order.Status = to
	if to == models.StatusDelivered {
		order.IsDelivered = true
		order.DeliveredAt = &now
		if !order.IsPaid {
			order.IsPaid = true
			order.PaidAt = &now
		}
	}
	return nil
}

// CreateOrder checks out the buyer's cart. Money fields are computed
// server side from the captured item snapshots, not trusted from the
// request.
func (s *OrderService) CreateOrder(ctx context.Context, buyer primitive.ObjectID, order *models.Order) error {
	if len(order.OrderItems) == 0 {
		return fmt.Errorf("%w: no order items", ErrValidation)
	}
	for _, item := range order.OrderItems {
		if item.Qty <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		if _, err := s.products.FindByID(ctx, item.Product); err != nil {
			return fmt.Errorf("%w: unknown product %s", ErrValidation, item.Product.Hex())
		}
	}

	itemsPrice := 0.0
	for _, item := range order.OrderItems {
		itemsPrice += item.Price * float64(item.Qty)
	}

	order.Buyer = buyer
	order.ItemsPrice = itemsPrice
	order.TotalPrice = itemsPrice + order.TaxPrice + order.ShippingPrice
	order.Status = models.StatusPending
	order.IsPaid = false
	order.IsDelivered = false
	order.IsClearedByUser = false

	return s.orders.Create(ctx, order)
}

// ListBuyerOrders returns the buyer's own orders, minus any they have
// cleared from their view.
func (s *OrderService) ListBuyerOrders(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByBuyer(ctx, buyer)
}

// GetBuyerOrder returns one of the buyer's own orders. Requesting
// somebody else's order is reported as not found, not forbidden, so the
// endpoint does not confirm that the order exists.
func (s *OrderService) GetBuyerOrder(ctx context.Context, buyer, id primitive.ObjectID) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if order.Buyer != buyer {
		return models.Order{}, ErrNotFound
	}
	return order, nil
}

// ListSellerOrders reconstructs the seller's order view at read time:
// resolve the owned product set, fetch every order touching it, then
// scope each order down to the seller's items. Orders the buyer cleared
// still appear here; clearing only hides the buyer's view.
func (s *OrderService) ListSellerOrders(ctx context.Context, seller primitive.ObjectID) ([]models.Order, error) {
	ids, err := s.products.IDsByOwner(ctx, seller)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Order{}, nil
	}

	orders, err := s.orders.FindTouchingProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	owned := OwnedSet(ids)
	views := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if view, ok := ScopeOrder(order, owned); ok {
			views = append(views, view)
		}
	}
	return views, nil
}

// UpdateStatus moves an order to a new lifecycle state on behalf of a
// seller. The seller must own at least one item in the order; the
// status change then applies to the whole shared order.
func (s *OrderService) UpdateStatus(ctx context.Context, seller, orderID primitive.ObjectID, to models.OrderStatus) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	ids, err := s.products.IDsByOwner(ctx, seller)
	if err != nil {
		return models.Order{}, err
	}
	if _, ok := ScopeOrder(order, OwnedSet(ids)); !ok {
		return models.Order{}, ErrForbidden
	}

	if err := Transition(&order, to, time.Now()); err != nil {
		return models.Order{}, err
	}
	if err := s.orders.Save(ctx, &order); err != nil {
		return models.Order{}, err
	}

	metrics.OrderTransitions.WithLabelValues(string(to)).Inc()
	return order, nil
}

// ConfirmPayment records a successful provider payment against the
// buyer's order and moves it to Accepted.
func (s *OrderService) ConfirmPayment(ctx context.Context, buyer, orderID primitive.ObjectID, result models.PaymentResult) (models.Order, error) {
	order, err := s.GetBuyerOrder(ctx, buyer, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status.Terminal() {
		return models.Order{}, fmt.Errorf("%w: order is already %s", ErrConflict, string(order.Status))
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = result
	order.Status = models.StatusAccepted

	if err := s.orders.Save(ctx, &order); err != nil {
		return models.Order{}, err
	}

	metrics.OrderTransitions.WithLabelValues(string(models.StatusAccepted)).Inc()
	return order, nil
}

// ClearOrders hides the buyer's finished orders (Delivered or Cancelled)
// from their own view and returns how many were hidden. Nothing is
// deleted and sellers keep seeing the orders.
func (s *OrderService) ClearOrders(ctx context.Context, buyer primitive.ObjectID) (int64, error) {
	return s.orders.ClearForBuyer(ctx, buyer)
}

// DeleteOrder permanently removes an order regardless of its state.
// Try-on events and analytics derived from the order's past existence
// are not rewritten.
func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.Delete(ctx, id)
}
