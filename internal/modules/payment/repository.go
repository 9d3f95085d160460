package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for payments.
//
// Record and MarkPaid each run one transaction that locks the parent order
// row first, so payment mutations on the same order are serialized and the
// overpayment check reads a stable paid total.
type Repository interface {
	// Record inserts a PENDING payment after validating that the paid
	// total plus the new amount stays within the order total.
	Record(ctx context.Context, p *Payment) error

	// MarkPaid flips PENDING -> PAID, re-checks the overpayment invariant
	// and refreshes the client ledger within the same transaction.
	MarkPaid(ctx context.Context, id uuid.UUID) (*Payment, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Payment, error)
}
