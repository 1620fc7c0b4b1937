package models

import (
	"github.com/shopspring/decimal"
)

// OrderStatus follows the backend's request lifecycle.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderShipped   OrderStatus = "SHIPPED"
)

// Order is a placed order. The server assigns the id and status.
type Order struct {
	ID            string          `json:"id,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Status        OrderStatus     `json:"status,omitempty"`
	UserID        int64           `json:"userId,omitempty"`
	RequestIDs    []string        `json:"requestsIds,omitempty"`
}
