package httpx

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/nvsprasad/ricemill-ops/internal/kafka"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

type EventPublisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

// publishEvent emits a v1 envelope keyed by the aggregate id. Called only
// after the workflow transaction committed.
func publishEvent(p EventPublisher, topic, eventType, producer, traceID string, correlationID int64, payload any) {
	ev := ricemill.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: strconv.FormatInt(correlationID, 10),
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(topic, ricemill.PartitionKey(correlationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
