package customers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/registration-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterCustomerRoutes(r chi.Router) {
	r.Post("/", h.createCustomer)
	r.Get("/", h.listCustomers)
	r.Get("/{id}", h.getCustomer)
	r.Put("/{id}", h.updateCustomer)
	r.Delete("/{id}", h.deleteCustomer)
	r.Patch("/{id}/email", h.updateCustomerEmail)
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	customer, err := h.svc.Create(r.Context(), req)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusCreated, customer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListAll(r.Context())
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	customer, found, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}
	if !found {
		handlers.RespondWithError(w, http.StatusNotFound, "cliente não encontrado")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, customer)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	customer, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, customer)
}

func (h *Handler) updateCustomerEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	customer, err := h.svc.UpdateEmail(r.Context(), id, req.Email)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}
	if !deleted {
		// Removed by someone else between the lookup and the delete.
		handlers.RespondWithError(w, http.StatusNotFound, "cliente não encontrado")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID accepts only the canonical decimal form of an id; "007" and "+7"
// are rejected rather than treated as 7.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || strconv.FormatInt(id, 10) != raw {
		handlers.RespondWithError(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}
