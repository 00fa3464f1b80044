// Package events relays outbox messages to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"tokopos/internal/infrastructure/storage/postgres"
	"tokopos/pkg/logger"
)

// KafkaConfig holds producer settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaPublisher pushes outbox messages to a Kafka topic. Implements
// postgres.OutboxHandler. Messages are keyed by tenant so that one
// tenant's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher creates a Kafka-backed outbox handler.
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer, topic: cfg.Topic}
}

// envelope is the wire format of a relayed event.
type envelope struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Handle publishes one outbox message.
func (p *KafkaPublisher) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	body, err := json.Marshal(envelope{
		ID:            msg.ID.String(),
		TenantID:      msg.TenantID.String(),
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID.String(),
		EventType:     msg.EventType,
		Payload:       json.RawMessage(msg.Payload),
		OccurredAt:    msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.TenantID.String()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}

	logger.Debug(ctx, "event relayed",
		"event_type", msg.EventType,
		"aggregate_id", msg.AggregateID,
	)

	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
