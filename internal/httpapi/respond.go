package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError owns the error-kind to status-code mapping. The core raises
// typed failures; nothing below this layer knows about HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.IsInvalidState(err), apperr.IsConflict(err), apperr.IsInsufficientStock(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writeBadID(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: name + " must be a positive integer"})
}
