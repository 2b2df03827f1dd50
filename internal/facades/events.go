package facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
)

// messageWriter is the subset of kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher streams mutation events to Kafka. Publishing is
// best-effort: failures are logged and never fail the mutation.
type EventPublisher struct {
	writer messageWriter
}

// NewEventPublisher builds a publisher for the given brokers and topic.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NewEventPublisherWithWriter builds a publisher around an existing writer.
func NewEventPublisherWithWriter(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// mutationEvent is the message payload.
type mutationEvent struct {
	Operation  string `json:"operation"`
	EntityID   string `json:"entityId"`
	UserID     string `json:"userId"`
	OccurredAt string `json:"occurredAt"`
}

// Publish emits a mutation event keyed by entity id.
func (p *EventPublisher) Publish(ctx context.Context, operation, entityID, userID string) {
	if p == nil || p.writer == nil {
		return
	}

	payload, err := json.Marshal(mutationEvent{
		Operation:  operation,
		EntityID:   entityID,
		UserID:     userID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Log.Errorw("failed to marshal mutation event", "operation", operation, "error", err)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entityID),
		Value: payload,
	}); err != nil {
		logger.Log.Errorw("failed to publish mutation event",
			"operation", operation,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// Close releases the underlying writer.
func (p *EventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
