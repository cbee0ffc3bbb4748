package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// Publisher wraps a Kafka sync producer. Events are best-effort
// observability signals, not a ledger of record: callers log publish
// failures and move on, they never roll a committed transaction back.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer, brokers: brokers}, nil
}

// PublishInvoiceCreated publishes an invoice created event
func (p *Publisher) PublishInvoiceCreated(ctx context.Context, event InvoiceCreatedEvent) error {
	event.EventType = EventTypeInvoiceCreated
	return p.publish(ctx, TopicInvoiceCreated, event.EventType, &event.EventID, &event.Timestamp, &event)
}

// PublishOrderReceived publishes an order received event
func (p *Publisher) PublishOrderReceived(ctx context.Context, event OrderReceivedEvent) error {
	event.EventType = EventTypeOrderReceived
	return p.publish(ctx, TopicOrderReceived, event.EventType, &event.EventID, &event.Timestamp, &event)
}

// PublishStockAdjusted publishes a stock adjusted event
func (p *Publisher) PublishStockAdjusted(ctx context.Context, event StockAdjustedEvent) error {
	event.EventType = EventTypeStockAdjusted
	return p.publish(ctx, TopicStockAdjusted, event.EventType, &event.EventID, &event.Timestamp, &event)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType string, eventID *string, timestamp *time.Time, payload interface{}) error {
	tracer := otel.Tracer("kafka-publisher")
	_, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	if *eventID == "" {
		*eventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	*timestamp = time.Now()
	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(*eventID),
		Value: sarama.ByteEncoder(eventBytes),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Logger.Debug().
		Str("topic", topic).
		Str("event_id", *eventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close shuts down the producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
