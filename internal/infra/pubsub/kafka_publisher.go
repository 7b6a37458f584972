package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/segmentio/kafka-go"
)

const (
	kafkaMaxAttempts  = 3
	kafkaWriteTimeout = 10 * time.Second
)

// kafkaPublisher implements EventPublisher on a single Kafka topic.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  kafkaMaxAttempts,
		WriteTimeout: kafkaWriteTimeout,
		ReadTimeout:  kafkaWriteTimeout,
	}, logger)
}

func newKafkaPublisher(writer *kafka.Writer, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event *service.Event) error {
	msg, err := toKafkaMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to write message to kafka")
	}

	p.logger.DebugContext(ctx, "[Kafka] Event published",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.String("key", event.Key),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}

// toKafkaMessage keys the message by event.Key, falling back to the event id.
func toKafkaMessage(event *service.Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "failed to marshal event")
	}

	key := event.Key
	if key == "" {
		key = event.ID
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for k, v := range attributes {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	return kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
		Time:    time.Now(),
	}, nil
}
