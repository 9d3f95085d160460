package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders.
//
// Each transition method is a single database transaction: the order row is
// locked first, then every entity the transition touches (offer hold,
// order status, client ledger) commits together. Concurrent confirms for
// the same offer race on the offer's conditional update; the loser's
// transaction rolls back with apperr.ErrConflict.
type Repository interface {
	// Create persists a new PENDING order after checking the offer is
	// still AVAILABLE. The offer itself is not touched; a pending order
	// does not block other buyers.
	Create(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, status string) ([]*Order, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Order, error)

	// Confirm reserves the offer, freezes the total at the current offer
	// price and moves the order to CONFIRMED.
	Confirm(ctx context.Context, id uuid.UUID) (*Order, error)

	// Complete marks the offer sold and the order COMPLETED. With
	// requireFullPayment, the paid total must cover the order total.
	Complete(ctx context.Context, id uuid.UUID, requireFullPayment bool) (*Order, error)

	// Cancel releases the offer hold (when CONFIRMED) and moves the order
	// to its terminal CANCELLED state.
	Cancel(ctx context.Context, id uuid.UUID) (*Order, error)
}
