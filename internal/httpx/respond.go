package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
)

// JSON writes body as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error maps err through the error taxonomy and writes a JSON error body
// carrying the machine-checkable kind alongside the message.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.HTTPStatus(err), map[string]string{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}
