// Package kafka provides Kafka producer and consumer clients backed by
// segmentio/kafka-go. The producer serialises events as JSON, while the
// consumer decodes them via a pluggable MessageHandler callback.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/resilience"
	"github.com/segmentio/kafka-go"
)

// MessageHandler is a callback invoked for each Kafka message. Returning an
// error makes the consumer retry the same message with back-off; the next
// message is not fetched until the handler succeeds.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// messageReader is the subset of *kafka.Reader the consume loop uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads messages from a Kafka topic and dispatches them to a
// MessageHandler.
type Consumer struct {
	reader  messageReader
	logger  *slog.Logger
	handler MessageHandler
	retry   resilience.RetryConfig
}

// NewConsumer creates a Consumer for the given topic and handler. A group
// without committed offsets starts from the oldest message so a fresh
// in-memory index sees the whole topic.
func NewConsumer(cfg config.KafkaConfig, topic string, handler MessageHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})

	return newConsumer(r, topic, handler)
}

func newConsumer(r messageReader, topic string, handler MessageHandler) *Consumer {
	return &Consumer{
		reader:  r,
		logger:  slog.Default().With("component", "kafka-consumer", "topic", topic),
		handler: handler,
		retry:   resilience.RetryConfig{MaxDelay: 5 * time.Second},
	}
}

// Start enters the consume loop, fetching and processing messages until ctx
// is cancelled. Messages are committed in order, one at a time.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	failures := 0
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping", "reason", ctx.Err())
				return nil
			}
			failures++
			delay := resilience.Backoff(failures, c.retry)
			c.logger.Error("failed to fetch message", "error", err, "retry_in", delay)
			if !sleep(ctx, delay) {
				return nil
			}
			continue
		}
		failures = 0
		c.logger.Debug("message received",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
			"value_size", len(msg.Value),
		)
		if !c.process(ctx, msg) {
			c.logger.Info("consumer stopping", "reason", ctx.Err())
			return nil
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

// process runs the handler on msg until it succeeds. It reports false if ctx
// ended first, in which case msg is left uncommitted.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, msg.Key, msg.Value)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		delay := resilience.Backoff(attempt, c.retry)
		c.logger.Error("failed to process message",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)
		if !sleep(ctx, delay) {
			return false
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close closes the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// DecodeJSON is a generic helper that unmarshals a Kafka message value into T.
func DecodeJSON[T any](value []byte) (T, error) {
	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return result, fmt.Errorf("decoding kafka message: %w", err)
	}
	return result, nil
}
