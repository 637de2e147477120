package products

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/registration-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterProductRoutes(r chi.Router) {
	r.Post("/", h.createProduct)
	r.Get("/", h.listProducts)
	r.Get("/{id}", h.getProduct)
	r.Put("/{id}", h.updateProduct)
	r.Delete("/{id}", h.deleteProduct)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	product, err := h.svc.Create(r.Context(), req)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListAll(r.Context())
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, found, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}
	if !found {
		handlers.RespondWithError(w, http.StatusNotFound, "produto não encontrado")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	product, found, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}
	if !found {
		handlers.RespondWithError(w, http.StatusNotFound, "produto não encontrado")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.RespondWithServiceError(w, r, err)
		return
	}
	if !deleted {
		handlers.RespondWithError(w, http.StatusNotFound, "produto não encontrado")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
