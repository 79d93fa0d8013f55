package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle state.
//
// Pending is the initial state; Delivered and Cancelled are terminal.
// Transitions between non-terminal states are permissive: a seller may
// move an order from any non-terminal state to any other.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusAccepted  OrderStatus = "Accepted"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderItem is a line item inside an order. Price and Name are captured
// at purchase time so the item survives later product mutation or
// deletion; Product is a weak reference back into the catalogue.
type OrderItem struct {
	Product primitive.ObjectID `json:"product" bson:"product"`
	Name    string             `json:"name" bson:"name"`
	Image   string             `json:"image,omitempty" bson:"image,omitempty"`
	Price   float64            `json:"price" bson:"price"`
	Qty     int                `json:"qty" bson:"qty"`
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// PaymentResult records the outcome reported by the payment provider.
type PaymentResult struct {
	ID         string `json:"id,omitempty" bson:"id,omitempty"`
	Status     string `json:"status,omitempty" bson:"status,omitempty"`
	UpdateTime string `json:"update_time,omitempty" bson:"update_time,omitempty"`
}

// Order is a buyer's purchase. A single order can mix items from several
// sellers; it lives whole in one shared collection. TotalPrice always
// reflects the sum over ALL items; per-seller totals are derived views
// (see services.ScopeOrder) and are never written back.
//
// The item list is immutable after checkout. Only the status and the
// payment/delivery flags mutate afterwards.
type Order struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Buyer           primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentResult   PaymentResult      `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	ItemsPrice      float64            `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	Status          OrderStatus        `json:"status" bson:"status"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	IsClearedByUser bool               `json:"isClearedByUser" bson:"isClearedByUser"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
