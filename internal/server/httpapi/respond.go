package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/linkhub/internal/common"
)

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Validation messages
// are safe to echo; anything unrecognized is a service error that gets logged
// with context and answered with a generic body, never internal detail.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error, logArgs ...any) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Message: "not found"})
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
	case errors.Is(err, common.ErrorConflict):
		writeJSON(w, http.StatusConflict, errorBody{Message: "already exists"})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "unauthorized"})
	default:
		s.logger.Error(ctx, "request failed", append([]any{"error", err.Error()}, logArgs...)...)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
	}
}
