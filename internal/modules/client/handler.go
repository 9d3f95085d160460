package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/httpx"
)

// Handler exposes client HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/clients", func(r chi.Router) {
		r.Post("/", h.createClient)       // POST   /api/v1/clients
		r.Get("/", h.listClients)         // GET    /api/v1/clients
		r.Get("/{id}", h.getClient)       // GET    /api/v1/clients/{id}
		r.Patch("/{id}", h.updateClient)  // PATCH  /api/v1/clients/{id}
		r.Delete("/{id}", h.deleteClient) // DELETE /api/v1/clients/{id}
	})
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, fmt.Errorf("%s: %w", err, apperr.ErrValidation))
		return
	}
	c, err := h.service.CreateClient(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// updateClient accepts profile fields only. total_spent and
// outstanding_balance are server-derived, so any unknown field in the
// payload fails the request instead of being silently dropped.
func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpdateClientRequest
	if err := dec.Decode(&req); err != nil {
		httpx.Error(w, fmt.Errorf("%s: %w", err, apperr.ErrValidation))
		return
	}
	c, err := h.service.UpdateClient(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "client deleted"})
}
