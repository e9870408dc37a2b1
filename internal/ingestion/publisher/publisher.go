// Package publisher applies document changes to the engine. Each change is
// validated, indexed, persisted when a document store is configured, and
// announced on the index-complete topic when a notifier is configured.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/store"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion/validator"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/metrics"
)

// Store is the persistence the publisher writes through to.
type Store interface {
	Save(ctx context.Context, id, body, status string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// Notifier publishes index-complete events.
type Notifier interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// Publisher is safe for concurrent use. Store and Notifier may be nil;
// pass an untyped nil, not a nil pointer.
type Publisher struct {
	engine   *indexer.Engine[string]
	store    Store
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(engine *indexer.Engine[string], st Store, notifier Notifier, m *metrics.Metrics) *Publisher {
	return &Publisher{
		engine:   engine,
		store:    st,
		notifier: notifier,
		metrics:  m,
		logger:   slog.Default().With("component", "publisher"),
	}
}

// Source yields stored documents, as DocumentStore.Load does.
type Source interface {
	Load(ctx context.Context, fn func(id, body string) error) (int, error)
}

// Restore indexes every document src yields without writing it back.
// Documents already in the engine are skipped.
func (p *Publisher) Restore(ctx context.Context, src Source) (int, error) {
	start := time.Now()
	restored := 0
	_, err := src.Load(ctx, func(id, body string) error {
		if err := p.engine.AddDocument(id, body); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateDocument) {
				return nil
			}
			p.logger.Warn("skipping stored document", "doc_id", id, "error", err)
			return nil
		}
		restored++
		return ctx.Err()
	})
	p.updateGauges()
	p.metrics.DocsIndexedTotal.Add(float64(restored))
	if err != nil {
		return restored, err
	}
	p.logger.Info("corpus restored",
		"documents", restored,
		"terms", p.engine.TermCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return restored, nil
}

// Add indexes a new document. It fails with ErrDuplicateDocument when id is
// already indexed and with a *validator.ValidationError for bad input.
func (p *Publisher) Add(ctx context.Context, id, text string) (*ingestion.DocumentResponse, error) {
	if err := validator.ValidateDocument(id, text); err != nil {
		p.metrics.DocsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if err := p.engine.AddDocument(id, text); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateDocument) {
			p.metrics.DocsRejectedTotal.WithLabelValues("duplicate").Inc()
		} else {
			p.metrics.DocsRejectedTotal.WithLabelValues("invalid").Inc()
		}
		return nil, err
	}
	p.metrics.DocsIndexedTotal.Inc()
	p.indexed(ctx, id, text)
	return p.response(id, store.StatusIndexed), nil
}

// Replace indexes text under id, removing any previous version first.
func (p *Publisher) Replace(ctx context.Context, id, text string) (*ingestion.DocumentResponse, error) {
	if err := validator.ValidateDocument(id, text); err != nil {
		p.metrics.DocsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	replaced, err := p.engine.ReplaceDocument(id, text)
	if err != nil {
		p.metrics.DocsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if replaced {
		p.metrics.DocsRemovedTotal.Inc()
	}
	p.metrics.DocsIndexedTotal.Inc()
	p.indexed(ctx, id, text)
	return p.response(id, store.StatusIndexed), nil
}

// Remove drops id from the engine and the store.
func (p *Publisher) Remove(ctx context.Context, id string) error {
	if err := p.engine.RemoveDocument(id); err != nil {
		return err
	}
	p.metrics.DocsRemovedTotal.Inc()
	p.updateGauges()
	if p.store != nil {
		if err := p.store.Delete(ctx, id); err != nil {
			logger.FromContext(ctx).Error("failed to delete stored document", "doc_id", id, "error", err)
		}
	}
	return nil
}

// MarkFailed records that id could not be indexed.
func (p *Publisher) MarkFailed(ctx context.Context, id string) {
	if p.store == nil {
		return
	}
	if err := p.store.UpdateStatus(ctx, id, store.StatusFailed); err != nil {
		logger.FromContext(ctx).Error("failed to mark document failed", "doc_id", id, "error", err)
	}
}

// indexed runs the side effects of a successful index. Failures here are
// logged: the document is already searchable.
func (p *Publisher) indexed(ctx context.Context, id, text string) {
	log := logger.FromContext(ctx)
	p.updateGauges()
	if p.store != nil {
		if err := p.store.Save(ctx, id, text, store.StatusIndexed); err != nil {
			log.Error("failed to persist document", "doc_id", id, "error", err)
		}
	}
	if p.notifier != nil {
		event := kafka.Event{
			Key: id,
			Value: ingestion.IndexCompleteEvent{
				DocumentID: id,
				Status:     store.StatusIndexed,
				Generation: p.engine.Generation(),
				IndexedAt:  time.Now().UTC(),
			},
		}
		if err := p.notifier.Publish(ctx, event); err != nil {
			log.Error("failed to publish index-complete event", "doc_id", id, "error", err)
		}
	}
	log.Debug("document indexed", "doc_id", id)
}

func (p *Publisher) updateGauges() {
	p.metrics.CorpusDocuments.Set(float64(p.engine.DocumentCount()))
	p.metrics.CorpusTerms.Set(float64(p.engine.TermCount()))
}

func (p *Publisher) response(id, status string) *ingestion.DocumentResponse {
	resp := &ingestion.DocumentResponse{
		DocumentID:    id,
		Status:        status,
		DocumentCount: p.engine.DocumentCount(),
	}
	if doc, ok := p.engine.Document(id); ok {
		resp.Terms = len(doc.Terms)
	}
	return resp
}
