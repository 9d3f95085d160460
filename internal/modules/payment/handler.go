package payment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/httpx"
)

// Handler exposes payment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/", h.recordPayment)                       // POST /api/v1/payments
		r.Get("/{id}", h.getPayment)                       // GET  /api/v1/payments/{id}
		r.Post("/{id}/paid", h.markPaid)                   // POST /api/v1/payments/{id}/paid
		r.Get("/order/{order_id}", h.listOrderPayments)    // GET  /api/v1/payments/order/{order_id}
		r.Get("/client/{client_id}", h.listClientPayments) // GET  /api/v1/payments/client/{client_id}
	})
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, fmt.Errorf("%s: %w", err, apperr.ErrValidation))
		return
	}
	p, err := h.service.RecordPayment(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) listOrderPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.PaymentsForOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) listClientPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.PaymentsForClient(r.Context(), chi.URLParam(r, "client_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}
