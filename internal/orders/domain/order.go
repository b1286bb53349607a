package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ErrInvalidTransition is returned when a status change is not allowed
// by the transition policy.
var ErrInvalidTransition = errors.New("invalid status transition")

// ParseStatus converts raw input into an OrderStatus.
func ParseStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPending, StatusDelivered, StatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

// Order represents a customer order owned by this service. Monetary
// amounts are integer cents.
type Order struct {
	ID               string      `json:"id"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	TotalItems       int         `json:"total_items"`
	Status           OrderStatus `json:"status"`
	Paid             bool        `json:"paid"`
	PaidAt           *time.Time  `json:"paid_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem is a line of an order. Price is a snapshot of the catalog
// price at creation time and never changes afterwards.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	ProductID  int64  `json:"product_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// Product is the slice of the externally-owned product entity this
// service consumes: identity, display name and current price.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// Line is a requested (product, quantity) pair prior to persistence.
type Line struct {
	ProductID int64
	Quantity  int
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if o.ID == "" {
		return errors.New("id is required")
	}
	if o.TotalAmountCents < 0 {
		return errors.New("total_amount_cents must not be negative")
	}
	if o.TotalItems < 0 {
		return errors.New("total_items must not be negative")
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

// IsTerminal indicates whether the order is in a terminal state.
func (o Order) IsTerminal() bool {
	switch o.Status {
	case StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition is the single place where the status machine lives:
// PENDING may move to DELIVERED or CANCELLED, terminal states are
// frozen. Same-status requests are a no-op and must be handled before
// calling this.
func CanTransition(from, to OrderStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusDelivered || to == StatusCancelled
}
