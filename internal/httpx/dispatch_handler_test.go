package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type stubDispatchStore struct {
	res *ricemill.DispatchResult
	err error
}

func (s *stubDispatchStore) AllocateDispatchTx(_ context.Context, _ int64) (*ricemill.DispatchResult, error) {
	return s.res, s.err
}

func TestAllocateDispatch(t *testing.T) {
	t.Run("successful allocation", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		pub := &fakePublisher{}
		h := &DispatchHandler{
			Store: &stubDispatchStore{res: &ricemill.DispatchResult{
				OrderID:       9,
				VehicleNumber: "KA-05-1234",
				DriverID:      3,
				StartDate:     start,
				DeliveryDate:  start.Add(ricemill.DeliveryOffset),
			}},
			Producer: pub, Cache: newFakeCache(), Log: testLogger(), Service: "test-api",
		}
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/orders/9/dispatch", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["vehicle_number"] != "KA-05-1234" || body["driver_id"] != float64(3) {
			t.Fatalf("unexpected body: %v", body)
		}
		if len(pub.events) != 1 || pub.events[0].topic != ricemill.TopicDispatchScheduled {
			t.Fatalf("expected DispatchScheduled event, got %+v", pub.events)
		}
	})

	t.Run("no vehicle is soft 400", func(t *testing.T) {
		pub := &fakePublisher{}
		h := &DispatchHandler{
			Store:    &stubDispatchStore{err: ricemill.ErrNoVehicleAvailable},
			Producer: pub, Cache: newFakeCache(), Log: testLogger(), Service: "test-api",
		}
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/orders/9/dispatch", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := decodeBody(t, rec)
		if errMsg, _ := body["error"].(string); !strings.Contains(errMsg, "expect delivery in a week") {
			t.Fatalf("error = %v", body["error"])
		}
		if len(pub.events) != 0 {
			t.Fatal("no event on rollback")
		}
	})

	t.Run("no driver is soft 400", func(t *testing.T) {
		h := &DispatchHandler{
			Store:    &stubDispatchStore{err: ricemill.ErrNoDriverAvailable},
			Producer: &fakePublisher{}, Cache: newFakeCache(), Log: testLogger(), Service: "test-api",
		}
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/orders/9/dispatch", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		h := &DispatchHandler{
			Store:    &stubDispatchStore{err: ricemill.ErrOrderNotFound},
			Producer: &fakePublisher{}, Cache: newFakeCache(), Log: testLogger(), Service: "test-api",
		}
		r := NewRouter()
		h.Register(r)

		req := httptest.NewRequest(http.MethodPost, "/orders/999/dispatch", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
