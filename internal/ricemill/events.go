package ricemill

import (
	"encoding/json"
	"time"
)

const (
	EventQuoteSubmitted    = "QuoteSubmitted"
	EventQuoteDecided      = "QuoteDecided"
	EventOrderPaid         = "OrderPaid"
	EventDispatchScheduled = "DispatchScheduled"
)

// Envelope wraps every published event. Events are emitted only after the
// owning transaction commits, so consumers never see a rolled-back workflow.
type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "ricemill-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // quote number or order id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type QuoteSubmittedPayload struct {
	QuoteNumber   int64       `json:"quote_number"`
	SalesPersonID int64       `json:"sales_person_id"`
	Status        QuoteStatus `json:"status"`
	TotalPrice    float64     `json:"total_price"`
	OrderCreated  bool        `json:"order_created"`
}

type QuoteDecidedPayload struct {
	QuoteNumber int64       `json:"quote_number"`
	Status      QuoteStatus `json:"status"`
	TotalPrice  float64     `json:"total_price,omitempty"`
}

type OrderPaidPayload struct {
	OrderID   int64   `json:"order_id"`
	PaymentID int64   `json:"payment_id"`
	Amount    float64 `json:"amount"`
}

type DispatchScheduledPayload struct {
	OrderID       int64     `json:"order_id"`
	VehicleNumber string    `json:"vehicle_number"`
	DriverID      int64     `json:"driver_id"`
	StartDate     time.Time `json:"start_date"`
	DeliveryDate  time.Time `json:"delivery_date"`
}
