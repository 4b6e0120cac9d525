package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type RiceStore interface {
	ListRice(ctx context.Context) ([]ricemill.RiceItem, error)
	UpdateRiceDetailsTx(ctx context.Context, updates []ricemill.RiceDetailsUpdate) error
}

type RiceHandler struct {
	Store RiceStore
	Log   *zap.Logger
}

type RiceItemResp struct {
	RiceID         int64   `json:"rice_id"`
	RiceName       string  `json:"rice_name"`
	Description    string  `json:"description"`
	StockAvailable float64 `json:"stock_available"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
}

func (h *RiceHandler) Register(r *chi.Mux) {
	r.Get("/rice", h.listRice)
	r.Post("/rice/details", h.updateDetails)
}

func (h *RiceHandler) listRice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Store.ListRice(ctx)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}
	out := make([]RiceItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, RiceItemResp{
			RiceID:         it.RiceID,
			RiceName:       it.RiceName,
			Description:    it.Description,
			StockAvailable: it.StockAvailable,
			MinPrice:       it.MinPrice,
			MaxPrice:       it.MaxPrice,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RiceHandler) updateDetails(w http.ResponseWriter, r *http.Request) {
	var updates []ricemill.RiceDetailsUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(updates) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no updates"})
		return
	}
	for _, u := range updates {
		if u.MinPrice <= 0 || u.MaxPrice < u.MinPrice || u.AddStock < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price band or stock"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.UpdateRiceDetailsTx(ctx, updates); err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rice details updated"})
}
