package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/sangkips/registration-service/internal/apperr"
	"github.com/sangkips/registration-service/internal/db"
)

// InternalErrorMessage is the only text a 500 response ever carries.
const InternalErrorMessage = "erro interno do servidor"

type ErrorResponse struct {
	Error string `json:"error"`
}

// Send a standardized JSON error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithServiceError maps a service error to a status code: not found
// to 404, other validation errors to 400, everything else to 500.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &ve):
		RespondWithError(w, http.StatusBadRequest, ve.Message)
	default:
		ev := hlog.FromRequest(r).Error().Err(err)
		if code := db.ErrorCode(err); code != "" {
			ev = ev.Str("sqlstate", code)
		}
		ev.Msg("request failed")
		RespondWithError(w, http.StatusInternalServerError, InternalErrorMessage)
	}
}

// NotFound and MethodNotAllowed replace chi's plain text defaults.
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondWithError(w, http.StatusNotFound, "recurso não encontrado")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondWithError(w, http.StatusMethodNotAllowed, "método não permitido")
}
