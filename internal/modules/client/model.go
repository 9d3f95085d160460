package client

import (
	"time"

	"github.com/google/uuid"
)

// Client is a buyer.
//
// TotalSpent and OutstandingBalance are cached projections over the
// client's orders and payments, refreshed inside the same transaction as
// the order/payment change that affects them. They are never written
// directly by callers.
type Client struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Address            string    `json:"address,omitempty"`
	TotalSpent         int64     `json:"total_spent"`
	OutstandingBalance int64     `json:"outstanding_balance"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateClientRequest is the payload for registering a buyer.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateClientRequest carries the client-writable profile fields. The
// financial aggregates are deliberately absent; the PATCH handler decodes
// with DisallowUnknownFields so a request naming them is rejected.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
