package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type stubOrderStore struct {
	payRes    *ricemill.PaymentResult
	payErr    error
	status    ricemill.OrderStatus
	statusErr error
}

func (s *stubOrderStore) PayOrderTx(_ context.Context, _, _ int64, _ int64) (*ricemill.PaymentResult, error) {
	return s.payRes, s.payErr
}

func (s *stubOrderStore) GetOrderStatus(_ context.Context, _ int64) (ricemill.OrderStatus, error) {
	return s.status, s.statusErr
}

func newOrdersHandler(store OrderStore) (*OrdersHandler, *fakePublisher, *fakeCache) {
	pub := &fakePublisher{}
	cache := newFakeCache()
	h := &OrdersHandler{Store: store, Producer: pub, Cache: cache, Log: testLogger(), Service: "test-api"}
	return h, pub, cache
}

func TestPayOrder(t *testing.T) {
	t.Run("successful payment", func(t *testing.T) {
		h, pub, cache := newOrdersHandler(&stubOrderStore{
			payRes: &ricemill.PaymentResult{PaymentID: 5, OrderID: 9, Amount: 2400},
		})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/sales-persons/7/orders/9/pay",
			strings.NewReader(`{"address_id":3}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["message"] != "Payment successful" || body["payment_id"] != float64(5) {
			t.Fatalf("unexpected body: %v", body)
		}
		if len(pub.events) != 1 || pub.events[0].topic != ricemill.TopicOrderPaid {
			t.Fatalf("expected OrderPaid event, got %+v", pub.events)
		}
		if got := cache.m[fmt.Sprintf(redisx.KeyOrderStatus, int64(9))]; !strings.Contains(got, "Paid") {
			t.Fatalf("order status not cached: %q", got)
		}
	})

	t.Run("foreign order is 403", func(t *testing.T) {
		h, pub, _ := newOrdersHandler(&stubOrderStore{payErr: ricemill.ErrUnauthorized})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/sales-persons/8/orders/9/pay",
			strings.NewReader(`{"address_id":3}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if len(pub.events) != 0 {
			t.Fatal("no event on failure")
		}
	})

	t.Run("double payment is 400 with current status", func(t *testing.T) {
		h, _, _ := newOrdersHandler(&stubOrderStore{payErr: &ricemill.InvalidStateError{Status: ricemill.OrderPaid}})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/sales-persons/7/orders/9/pay",
			strings.NewReader(`{"address_id":3}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "order is already Paid" {
			t.Fatalf("error = %v", body["error"])
		}
	})

	t.Run("stock drained since approval is 400 with item context", func(t *testing.T) {
		h, _, _ := newOrdersHandler(&stubOrderStore{
			payErr: &ricemill.InsufficientStockError{RiceID: 2, RequestedKg: 500, AvailableKg: 100},
		})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/sales-persons/7/orders/9/pay",
			strings.NewReader(`{"address_id":3}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["rice_id"] != float64(2) {
			t.Fatalf("rice_id missing: %v", body)
		}
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		h, _, _ := newOrdersHandler(&stubOrderStore{payErr: ricemill.ErrOrderNotFound})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/sales-persons/7/orders/999/pay",
			strings.NewReader(`{"address_id":3}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("cache hit skips the store", func(t *testing.T) {
		h, _, cache := newOrdersHandler(&stubOrderStore{statusErr: ricemill.ErrOrderNotFound})
		cache.m[fmt.Sprintf(redisx.KeyOrderStatus, int64(9))] = `{"status":"Allocated"}`
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["status"] != "Allocated" {
			t.Fatalf("body = %v", body)
		}
	})

	t.Run("cache miss falls back to db and backfills", func(t *testing.T) {
		h, _, cache := newOrdersHandler(&stubOrderStore{status: ricemill.OrderWaiting})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["status"] != "Waiting" {
			t.Fatalf("body = %v", body)
		}
		if got := cache.m[fmt.Sprintf(redisx.KeyOrderStatus, int64(9))]; !strings.Contains(got, "Waiting") {
			t.Fatalf("cache not backfilled: %q", got)
		}
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		h, _, _ := newOrdersHandler(&stubOrderStore{statusErr: ricemill.ErrOrderNotFound})
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodGet, "/orders/999", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
