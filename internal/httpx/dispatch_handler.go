package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type DispatchStore interface {
	AllocateDispatchTx(ctx context.Context, orderID int64) (*ricemill.DispatchResult, error)
}

type DispatchHandler struct {
	Store    DispatchStore
	Producer EventPublisher
	Cache    Cache
	Log      *zap.Logger
	Service  string
}

func (h *DispatchHandler) Register(r *chi.Mux) {
	r.Post("/orders/{orderID}/dispatch", h.allocate)
}

func (h *DispatchHandler) allocate(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Store.AllocateDispatchTx(ctx, orderID)
	if err != nil {
		writeWorkflowError(w, h.Log, err)
		return
	}

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Cache.Set(ctx, key, `{"status":"Allocated"}`, redisx.TTLStatusCache)

	publishEvent(h.Producer, ricemill.TopicDispatchScheduled, ricemill.EventDispatchScheduled,
		h.Service, r.Header.Get("X-Request-Id"), orderID,
		ricemill.DispatchScheduledPayload{
			OrderID:       res.OrderID,
			VehicleNumber: res.VehicleNumber,
			DriverID:      res.DriverID,
			StartDate:     res.StartDate,
			DeliveryDate:  res.DeliveryDate,
		})

	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Vehicle and driver allocated successfully and Dispatch scheduled",
		"vehicle_number": res.VehicleNumber,
		"driver_id":      res.DriverID,
		"start_date":     res.StartDate,
		"delivery_date":  res.DeliveryDate,
	})
}
