package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type QuoteStore interface {
	SubmitQuoteTx(ctx context.Context, salesPersonID int64, items []ricemill.QuoteLineInput) (*ricemill.QuoteResult, error)
	DecideQuoteTx(ctx context.Context, quoteNumber int64, action ricemill.DecisionAction) (*ricemill.DecisionResult, error)
}

type QuotesHandler struct {
	Store    QuoteStore
	Producer EventPublisher
	Cache    Cache
	Log      *zap.Logger
	Service  string
}

type SubmitQuoteResp struct {
	Message      string               `json:"message"`
	QuoteNumber  int64                `json:"quote_number"`
	Status       ricemill.QuoteStatus `json:"status"`
	OrderCreated bool                 `json:"order_created"`
}

type DecideQuoteReq struct {
	QuoteNumber int64  `json:"quote_number"`
	Action      string `json:"action"` // Approve | Reject
}

func (h *QuotesHandler) Register(r *chi.Mux) {
	r.Post("/sales-persons/{userID}/quotes", h.submitQuote)
	r.Post("/quotes/decision", h.decideQuote)
}

func (h *QuotesHandler) submitQuote(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	var items []ricemill.QuoteLineInput
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no items"})
		return
	}
	for _, it := range items {
		if it.Quantity <= 0 || it.QuotedPrice <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity and price must be positive"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Store.SubmitQuoteTx(ctx, userID, items)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}

	// cache status quote biar dashboard cepat
	qk := fmt.Sprintf(redisx.KeyQuoteStatus, res.QuoteNumber)
	_ = h.Cache.Set(ctx, qk, fmt.Sprintf(`{"status":%q}`, res.Status), redisx.TTLStatusCache)

	publishEvent(h.Producer, ricemill.TopicQuoteSubmitted, ricemill.EventQuoteSubmitted,
		h.Service, r.Header.Get("X-Request-Id"), res.QuoteNumber,
		ricemill.QuoteSubmittedPayload{
			QuoteNumber:   res.QuoteNumber,
			SalesPersonID: userID,
			Status:        res.Status,
			TotalPrice:    res.TotalPrice,
			OrderCreated:  res.OrderCreated,
		})

	msg := "Quote submitted for owner approval"
	if res.OrderCreated {
		msg = "Quote approved and order created"
	}
	writeJSON(w, http.StatusCreated, SubmitQuoteResp{
		Message:      msg,
		QuoteNumber:  res.QuoteNumber,
		Status:       res.Status,
		OrderCreated: res.OrderCreated,
	})
}

func (h *QuotesHandler) decideQuote(w http.ResponseWriter, r *http.Request) {
	var req DecideQuoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	action := ricemill.DecisionAction(req.Action)
	if action != ricemill.ActionApprove && action != ricemill.ActionReject {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "action must be Approve or Reject"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Store.DecideQuoteTx(ctx, req.QuoteNumber, action)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}

	qk := fmt.Sprintf(redisx.KeyQuoteStatus, res.QuoteNumber)
	_ = h.Cache.Set(ctx, qk, fmt.Sprintf(`{"status":%q}`, res.Status), redisx.TTLStatusCache)

	publishEvent(h.Producer, ricemill.TopicQuoteDecided, ricemill.EventQuoteDecided,
		h.Service, r.Header.Get("X-Request-Id"), res.QuoteNumber,
		ricemill.QuoteDecidedPayload{
			QuoteNumber: res.QuoteNumber,
			Status:      res.Status,
			TotalPrice:  res.TotalPrice,
		})

	if res.Status == ricemill.QuoteRejected {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Quote rejected successfully"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Quote approved and order created",
		"quote_number": res.QuoteNumber,
		"total_price":  res.TotalPrice,
	})
}
