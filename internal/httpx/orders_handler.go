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

type OrderStore interface {
	PayOrderTx(ctx context.Context, userID, orderID int64, addressID int64) (*ricemill.PaymentResult, error)
	GetOrderStatus(ctx context.Context, orderID int64) (ricemill.OrderStatus, error)
}

type OrdersHandler struct {
	Store    OrderStore
	Producer EventPublisher
	Cache    Cache
	Log      *zap.Logger
	Service  string
}

type PayOrderReq struct {
	AddressID int64 `json:"address_id"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/sales-persons/{userID}/orders/{orderID}/pay", h.payOrder)
	r.Get("/orders/{orderID}", h.getOrder)
}

func (h *OrdersHandler) payOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	var req PayOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Store.PayOrderTx(ctx, userID, orderID, req.AddressID)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Cache.Set(ctx, key, `{"status":"Paid"}`, redisx.TTLStatusCache)

	publishEvent(h.Producer, ricemill.TopicOrderPaid, ricemill.EventOrderPaid,
		h.Service, r.Header.Get("X-Request-Id"), orderID,
		ricemill.OrderPaidPayload{
			OrderID:   res.OrderID,
			PaymentID: res.PaymentID,
			Amount:    res.Amount,
		})

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Payment successful",
		"payment_id": res.PaymentID,
	})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Cache.Get(ctx, key); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// 2) fallback DB
	status, err := h.Store.GetOrderStatus(ctx, orderID)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}
	b, _ := json.Marshal(map[string]any{"status": status})
	_ = h.Cache.Set(ctx, key, string(b), redisx.TTLStatusCache)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
