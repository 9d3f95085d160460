package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of a sale.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// validTransitions defines the allowed status state machine. CANCELLED and
// COMPLETED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition returns true if moving from current to next is legal.
func CanTransition(current, next OrderStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Order is a sale transaction binding one offer to one client.
//
// Total is provisional while PENDING and frozen at confirmation; later
// offer price edits do not change it.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	OfferID     uuid.UUID   `json:"offer_id"`
	ClientID    uuid.UUID   `json:"client_id"`
	Status      OrderStatus `json:"status"`
	Discount    int64       `json:"discount"`
	Shipping    int64       `json:"shipping"`
	Total       int64       `json:"total"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ConfirmedAt *time.Time  `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
}

// ComputeTotal derives the amount owed for an order, clamped to >= 0.
func ComputeTotal(price, discount, shipping int64) int64 {
	total := price - discount + shipping
	if total < 0 {
		return 0
	}
	return total
}

// CreateOrderRequest is the payload for registering a purchase intent.
type CreateOrderRequest struct {
	OfferID  string `json:"offer_id"`
	ClientID string `json:"client_id"`
	Discount int64  `json:"discount,omitempty"`
	Shipping int64  `json:"shipping,omitempty"`
}
