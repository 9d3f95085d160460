package offer

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus represents the reservation state of a listed vehicle.
type OfferStatus string

const (
	StatusAvailable OfferStatus = "AVAILABLE"
	StatusReserved  OfferStatus = "RESERVED"
	StatusSold      OfferStatus = "SOLD"
)

// Offer is a vehicle listed for sale.
//
// While RESERVED or SOLD the offer is held by exactly one non-cancelled
// order, recorded in OrderID. An AVAILABLE offer has no owning order.
type Offer struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Brand       string      `json:"brand,omitempty"`
	Model       string      `json:"model,omitempty"`
	Year        int         `json:"year,omitempty"`
	Mileage     int         `json:"mileage,omitempty"`
	Price       int64       `json:"price"`
	SellerName  string      `json:"seller_name,omitempty"`
	SellerPhone string      `json:"seller_phone,omitempty"`
	Status      OfferStatus `json:"status"`
	OrderID     *uuid.UUID  `json:"order_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateOfferRequest is the payload for listing a new vehicle.
type CreateOfferRequest struct {
	Title       string `json:"title"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Year        int    `json:"year,omitempty"`
	Mileage     int    `json:"mileage,omitempty"`
	Price       int64  `json:"price"`
	SellerName  string `json:"seller_name,omitempty"`
	SellerPhone string `json:"seller_phone,omitempty"`
}

// UpdateOfferRequest is the payload for editing a listing. Status and the
// owning order are never client-writable; they move only through the
// reservation protocol.
type UpdateOfferRequest struct {
	Title       *string `json:"title,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Model       *string `json:"model,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Mileage     *int    `json:"mileage,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	SellerName  *string `json:"seller_name,omitempty"`
	SellerPhone *string `json:"seller_phone,omitempty"`
}
