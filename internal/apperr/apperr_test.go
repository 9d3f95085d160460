package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, "not_found"},
		{ErrInvalidState, "invalid_state"},
		{ErrConflict, "conflict"},
		{ErrNotOwner, "not_owner"},
		{ErrInvalidAmount, "invalid_amount"},
		{ErrOfferUnavailable, "offer_unavailable"},
		{ErrPaymentIncomplete, "payment_incomplete"},
		{ErrValidation, "validation"},
		{errors.New("boom"), "internal"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err))
	}
}

func TestKindWrapped(t *testing.T) {
	err := fmt.Errorf("offer 42: %w", ErrConflict)
	assert.Equal(t, "conflict", Kind(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrNotOwner, http.StatusConflict},
		{ErrInvalidState, http.StatusUnprocessableEntity},
		{ErrOfferUnavailable, http.StatusUnprocessableEntity},
		{ErrPaymentIncomplete, http.StatusUnprocessableEntity},
		{ErrInvalidAmount, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}
