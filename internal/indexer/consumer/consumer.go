// Package consumer reads ingest events from Kafka and adds them to the
// search engine through the publisher.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/kafka"
)

// DocumentAdder is the subset of *publisher.Publisher the consumer uses.
type DocumentAdder interface {
	Add(ctx context.Context, id, text string) (*ingestion.DocumentResponse, error)
	MarkFailed(ctx context.Context, id string)
}

// IndexConsumer wraps a Kafka consumer to drive the indexing pipeline.
type IndexConsumer struct {
	consumer *kafka.Consumer
	logger   *slog.Logger
}

func New(kafkaConsumer *kafka.Consumer) *IndexConsumer {
	return &IndexConsumer{
		consumer: kafkaConsumer,
		logger:   slog.Default().With("component", "index-consumer"),
	}
}

// Start blocks until ctx is cancelled.
func (ic *IndexConsumer) Start(ctx context.Context) error {
	ic.logger.Info("index consumer starting")
	return ic.consumer.Start(ctx)
}

func (ic *IndexConsumer) Close() error {
	return ic.consumer.Close()
}

// HandleMessage returns a MessageHandler that adds every ingest event to the
// engine. Undecodable, invalid and duplicate events are logged and
// committed; only unexpected failures are returned, so the consumer retries
// the same message before moving on.
func HandleMessage(adder DocumentAdder) kafka.MessageHandler {
	logger := slog.Default().With("component", "index-consumer")
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[ingestion.IngestEvent](value)
		if err != nil {
			logger.Error("failed to decode ingest event",
				"error", err,
				"key", string(key),
			)
			return nil
		}
		if event.DocumentID == "" {
			event.DocumentID = string(key)
		}
		logger.Debug("processing ingest event",
			"doc_id", event.DocumentID,
			"ingested_at", event.IngestedAt,
		)

		resp, err := adder.Add(ctx, event.DocumentID, event.Text)
		switch {
		case err == nil:
			logger.Info("document indexed",
				"doc_id", resp.DocumentID,
				"terms", resp.Terms,
				"document_count", resp.DocumentCount,
			)
			return nil
		case errors.Is(err, apperrors.ErrDuplicateDocument):
			logger.Warn("duplicate document ignored", "doc_id", event.DocumentID)
			return nil
		case errors.Is(err, apperrors.ErrInvalidArgument):
			logger.Error("invalid document rejected", "doc_id", event.DocumentID, "error", err)
			adder.MarkFailed(ctx, event.DocumentID)
			return nil
		default:
			adder.MarkFailed(ctx, event.DocumentID)
			return fmt.Errorf("indexing document %s: %w", event.DocumentID, err)
		}
	}
}
