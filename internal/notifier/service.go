package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/nvsprasad/ricemill-ops/internal/kafka"
	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

// StatusCache is the slice of Redis the notifier needs.
type StatusCache interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service keeps the read-side status cache warm from workflow events.
// The database stays the source of truth; losing the cache only costs a
// DB round trip on the next status read.
type Service struct {
	Cache       StatusCache
	Log         *zap.Logger
	ServiceName string
}

// HandleEvent dipasang sebagai handler consumer untuk semua topic workflow.
func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env ricemill.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup pakai event_id
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := s.Cache.Exists(ctx, dkey); exists {
		return nil
	}
	if err := s.Cache.Set(ctx, dkey, "1", redisx.TTLDedup); err != nil {
		return err
	}

	switch env.EventType {
	case ricemill.EventQuoteSubmitted:
		p, err := kafkax.UnwrapPayload[ricemill.QuoteSubmittedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.Log.Info("quote submitted",
			zap.Int64("quote_number", p.QuoteNumber),
			zap.String("status", string(p.Status)),
			zap.Bool("order_created", p.OrderCreated))
		return s.cacheQuoteStatus(ctx, p.QuoteNumber, p.Status)

	case ricemill.EventQuoteDecided:
		p, err := kafkax.UnwrapPayload[ricemill.QuoteDecidedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.Log.Info("quote decided",
			zap.Int64("quote_number", p.QuoteNumber),
			zap.String("status", string(p.Status)))
		return s.cacheQuoteStatus(ctx, p.QuoteNumber, p.Status)

	case ricemill.EventOrderPaid:
		p, err := kafkax.UnwrapPayload[ricemill.OrderPaidPayload](env.Payload)
		if err != nil {
			return err
		}
		s.Log.Info("order paid",
			zap.Int64("order_id", p.OrderID),
			zap.Float64("amount", p.Amount))
		return s.cacheOrderStatus(ctx, p.OrderID, ricemill.OrderPaid)

	case ricemill.EventDispatchScheduled:
		p, err := kafkax.UnwrapPayload[ricemill.DispatchScheduledPayload](env.Payload)
		if err != nil {
			return err
		}
		s.Log.Info("dispatch scheduled",
			zap.Int64("order_id", p.OrderID),
			zap.String("vehicle_number", p.VehicleNumber),
			zap.Int64("driver_id", p.DriverID))
		return s.cacheOrderStatus(ctx, p.OrderID, ricemill.OrderAllocated)
	}

	// topic tak dikenal: ignore, jangan block commit offset
	return nil
}

func (s *Service) cacheQuoteStatus(ctx context.Context, quoteNumber int64, status ricemill.QuoteStatus) error {
	key := fmt.Sprintf(redisx.KeyQuoteStatus, quoteNumber)
	return s.Cache.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), redisx.TTLStatusCache)
}

func (s *Service) cacheOrderStatus(ctx context.Context, orderID int64, status ricemill.OrderStatus) error {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	return s.Cache.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), redisx.TTLStatusCache)
}
