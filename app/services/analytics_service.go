package services

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/metrics"
)

// SellerAnalytics is one seller's dashboard summary, recomputed from the
// shared collections on every request.
type SellerAnalytics struct {
	TotalTryOns    int64   `json:"totalTryOns"`
	TotalOrders    int64   `json:"totalOrders"`
	NewCustomers   int64   `json:"newCustomers"`
	ConversionRate float64 `json:"conversionRate"`
}

// AnalyticsService aggregates try-on and order activity per seller.
type AnalyticsService struct {
	products ProductStore
	orders   OrderStore
	tryons   TryOnStore
}

func NewAnalyticsService(products ProductStore, orders OrderStore, tryons TryOnStore) *AnalyticsService {
	return &AnalyticsService{products: products, orders: orders, tryons: tryons}
}

// conversionRate is orders per hundred try-ons, rounded to one decimal
// place. Zero try-ons yields 0, not a division error; the rate can
// exceed 100 when shoppers order without trying on.
func conversionRate(orders, tryons int64) float64 {
	if tryons == 0 {
		return 0
	}
	return math.Round(float64(orders)/float64(tryons)*1000) / 10
}

// SellerSummary computes the seller's dashboard counters.
//
// Try-ons count by the owner denormalized at event time; orders and
// customers count by intersection with the seller's current product
// set. A seller with no products gets all zeros.
func (s *AnalyticsService) SellerSummary(ctx context.Context, seller primitive.ObjectID) (SellerAnalytics, error) {
	tryons, err := s.tryons.CountByAdmin(ctx, seller)
	if err != nil {
		return SellerAnalytics{}, err
	}

	ids, err := s.products.IDsByOwner(ctx, seller)
	if err != nil {
		return SellerAnalytics{}, err
	}

	var orders int64
	var customers int64
	if len(ids) > 0 {
		orders, err = s.orders.CountTouchingProducts(ctx, ids)
		if err != nil {
			return SellerAnalytics{}, err
		}

		buyers, err := s.orders.DistinctBuyersTouchingProducts(ctx, ids)
		if err != nil {
			return SellerAnalytics{}, err
		}
		customers = int64(len(buyers))
	}

	return SellerAnalytics{
		TotalTryOns:    tryons,
		TotalOrders:    orders,
		NewCustomers:   customers,
		ConversionRate: conversionRate(orders, tryons),
	}, nil
}

// LogTryOn records a try-on against a catalogue product. The product
// must exist; its current owner is copied onto the event so the try-on
// stays attributed to the seller who held the product at that moment.
// user is nil for anonymous shoppers.
func (s *AnalyticsService) LogTryOn(ctx context.Context, user *primitive.ObjectID, productID primitive.ObjectID) (models.TryOnEvent, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return models.TryOnEvent{}, err
	}

	event := models.TryOnEvent{
		User:    user,
		Product: product.ID,
		Admin:   product.Owner,
	}
	if err := s.tryons.Insert(ctx, &event); err != nil {
		return models.TryOnEvent{}, err
	}

	metrics.TryOnsLogged.Inc()
	return event, nil
}
