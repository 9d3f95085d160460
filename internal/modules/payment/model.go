package payment

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod indicates how the money was collected.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCard         PaymentMethod = "CARD"
)

// ValidMethod reports whether m is a supported payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodCard:
		return true
	}
	return false
}

// PaymentStatus represents the lifecycle of a payment record.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
)

// Payment is a monetary record applied against one order's total.
//
// The sum of PAID payments for an order never exceeds the order total;
// overpayment is rejected at record and at mark-paid time. A PAID payment
// is immutable; corrections are new adjustment records upstream.
type Payment struct {
	ID        uuid.UUID     `json:"id"`
	OrderID   uuid.UUID     `json:"order_id"`
	Amount    int64         `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Status    PaymentStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RecordPaymentRequest is the payload for recording money received.
type RecordPaymentRequest struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Method  string `json:"method"`
}
