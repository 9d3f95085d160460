package offer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/httpx"
)

// Handler exposes offer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/offers", func(r chi.Router) {
		r.Post("/", h.createOffer)       // POST   /api/v1/offers
		r.Get("/", h.listOffers)         // GET    /api/v1/offers?status=AVAILABLE
		r.Get("/{id}", h.getOffer)       // GET    /api/v1/offers/{id}
		r.Put("/{id}", h.updateOffer)    // PUT    /api/v1/offers/{id}
		r.Delete("/{id}", h.deleteOffer) // DELETE /api/v1/offers/{id}
	})
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, fmt.Errorf("%s: %w", err, apperr.ErrValidation))
		return
	}
	o, err := h.service.CreateOffer(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOffers(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, offers)
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOffer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	var req UpdateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, fmt.Errorf("%s: %w", err, apperr.ErrValidation))
		return
	}
	o, err := h.service.UpdateOffer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOffer(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "offer deleted"})
}
