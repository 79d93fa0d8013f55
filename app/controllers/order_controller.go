package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/bind"
	"github.com/pehnava/pehnava/pkg/response"
)

type OrderController struct {
	orders   *services.OrderService
	catalog  *services.CatalogService
	activity *services.ActivityService
}

func NewOrderController(orders *services.OrderService, catalog *services.CatalogService, activity *services.ActivityService) *OrderController {
	return &OrderController{orders: orders, catalog: catalog, activity: activity}
}

// Store checks out the buyer's cart.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	buyer, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var order models.Order
	if errs, err := bind.JSON(r, &order); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.CreateOrder(r.Context(), buyer, &order); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// One feed entry per seller whose products the order touches.
	notified := map[primitive.ObjectID]struct{}{}
	for _, item := range order.OrderItems {
		product, err := c.catalog.GetProduct(r.Context(), item.Product)
		if err != nil {
			continue
		}
		if _, done := notified[product.Owner]; done {
			continue
		}
		notified[product.Owner] = struct{}{}
		c.activity.Log(r.Context(), product.Owner, "New order received", "shopping-bag", "green") //nolint:errcheck
	}

	response.Created(w, order)
}

// MyOrders lists the buyer's own orders.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	buyer, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.ListBuyerOrders(r.Context(), buyer)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Show serves one of the buyer's own orders.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	buyer, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	order, err := c.orders.GetBuyerOrder(r.Context(), buyer, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}

// SellerIndex lists the seller's scoped order views.
func (c *OrderController) SellerIndex(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	views, err := c.orders.ListSellerOrders(r.Context(), seller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, views)
}

// UpdateStatus moves an order through its lifecycle on behalf of a
// seller.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	var in struct {
		Status models.OrderStatus `json:"status"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), seller, id, in.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c.activity.Log(r.Context(), seller, "Order marked "+string(in.Status), "truck", "blue") //nolint:errcheck
	response.Success(w, order)
}

// Clear hides the buyer's finished orders from their view.
func (c *OrderController) Clear(w http.ResponseWriter, r *http.Request) {
	buyer, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	n, err := c.orders.ClearOrders(r.Context(), buyer)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, map[string]int64{"cleared": n})
}

// Destroy permanently deletes an order.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	if err := c.orders.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Order removed")
}

// ConfirmPayment records a provider payment result and accepts the
// order.
func (c *OrderController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	buyer, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	var in models.PaymentResult
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.ConfirmPayment(r.Context(), buyer, id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}
