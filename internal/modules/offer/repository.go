package offer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for offers.
//
// Reserve, MarkSold and Release are the reservation protocol: each is a
// single conditional UPDATE checked by affected-row count, so concurrent
// callers race safely at the database. Constructing the repository over a
// *sql.Tx lets the order transitions run them inside their transaction.
type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Offer, error)
	List(ctx context.Context, status string) ([]*Offer, error)
	Update(ctx context.Context, o *Offer) error

	// Delete removes a listing. It refuses while the offer is held by a
	// non-cancelled order.
	Delete(ctx context.Context, id uuid.UUID) error

	// Reserve transitions AVAILABLE -> RESERVED for orderID. The loser of
	// a concurrent confirm gets apperr.ErrConflict.
	Reserve(ctx context.Context, offerID, orderID uuid.UUID) error

	// MarkSold transitions RESERVED -> SOLD for the owning order.
	MarkSold(ctx context.Context, offerID, orderID uuid.UUID) error

	// Release returns a RESERVED or SOLD offer to AVAILABLE, owner-checked
	// against orderID so a stale cancel cannot free someone else's hold.
	Release(ctx context.Context, offerID, orderID uuid.UUID) error
}
