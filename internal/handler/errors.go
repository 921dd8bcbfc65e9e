package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripdeck/backend/internal/domain"
)

// errorResponse is the JSON error envelope of the API.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps a service error to its HTTP status and error code.
// Validation failures are 400 (not the 500 some earlier clients expect);
// upstream generation failures stay 500 per the API contract.
func respondError(w http.ResponseWriter, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrGeneration):
		status, code = http.StatusInternalServerError, "generation_failed"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
		slog.Error("unhandled service error", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: userMessage(err)}})
}

// badRequest rejects a request before it reaches the service layer
// (e.g. malformed JSON, unparseable id).
func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: "validation_error", Message: message}})
}

// userMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.CartService.Update: validation error: price must be
// non-negative" → "price must be non-negative".
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrConflict.Error(),
		domain.ErrUnauthorized.Error(),
		domain.ErrGeneration.Error(),
	} {
		if i := strings.Index(msg, sentinel); i >= 0 {
			if tail := strings.TrimPrefix(msg[i+len(sentinel):], ": "); tail != "" && tail != msg[i+len(sentinel):] {
				return tail
			}
			return sentinel
		}
	}
	return msg
}
