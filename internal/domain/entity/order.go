// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle label of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	// OrderStatusUnknown is used when an order carries no status at all.
	OrderStatusUnknown OrderStatus = "unknown"
)

// Order represents an order document as consumed by the dashboard.
// Fields are optional because the document store does not enforce a schema.
type Order struct {
	ID            string
	Status        string
	PaymentMethod string
	CreatedAt     *time.Time
	GrandTotal    decimal.Decimal
}

// NormalizedStatus returns the trimmed, lower-cased status label.
// An empty label maps to OrderStatusUnknown.
func (o Order) NormalizedStatus() OrderStatus {
	return NormalizeStatus(o.Status)
}

// NormalizeStatus trims and lower-cases a free-text status label.
func NormalizeStatus(raw string) OrderStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return OrderStatusUnknown
	}
	return OrderStatus(s)
}
