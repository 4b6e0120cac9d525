package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeWorkflowError maps the domain error taxonomy onto HTTP: structured
// stock shortfalls and state guards are 400, unknown ids 404, ownership 403,
// anything else is an already-rolled-back infrastructure failure and stays a
// generic 500 so internals never leak.
func writeWorkflowError(w http.ResponseWriter, log *zap.Logger, err error) {
	var stockErr *ricemill.InsufficientStockError
	var stateErr *ricemill.InvalidStateError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Insufficient stock",
			"rice_id": stockErr.RiceID,
			"reason":  stockErr.Reason(),
		})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": stateErr.Error()})
	case errors.Is(err, ricemill.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Unauthorized access"})
	case errors.Is(err, ricemill.ErrQuoteNotPending):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Quote is not pending"})
	case errors.Is(err, ricemill.ErrNoVehicleAvailable),
		errors.Is(err, ricemill.ErrNoDriverAvailable):
		// soft business failure, bukan system error
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ricemill.ErrRiceNotFound),
		errors.Is(err, ricemill.ErrQuoteNotFound),
		errors.Is(err, ricemill.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Error("workflow failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
