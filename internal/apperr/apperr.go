package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the order/offer/payment consistency engine.
// Services wrap them with context (fmt.Errorf("...: %w", ...)) so callers
// classify with errors.Is while still seeing what went wrong.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("transition not allowed from current state")
	ErrConflict          = errors.New("lost concurrent reservation")
	ErrNotOwner          = errors.New("offer held by a different order")
	ErrInvalidAmount     = errors.New("invalid payment amount")
	ErrOfferUnavailable  = errors.New("offer is not available")
	ErrPaymentIncomplete = errors.New("order is not fully paid")
	ErrValidation        = errors.New("invalid request")
)

// Kind returns a stable machine-checkable classification for err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrInvalidState):
		return "invalid_state"

	case errors.Is(err, ErrConflict):
		return "conflict"

	case errors.Is(err, ErrNotOwner):
		return "not_owner"

	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"

	case errors.Is(err, ErrOfferUnavailable):
		return "offer_unavailable"

	case errors.Is(err, ErrPaymentIncomplete):
		return "payment_incomplete"

	case errors.Is(err, ErrValidation):
		return "validation"

	default:
		return "internal"
	}
}

// HTTPStatus maps err onto the REST status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotOwner):
		return http.StatusConflict

	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrOfferUnavailable),
		errors.Is(err, ErrPaymentIncomplete):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
