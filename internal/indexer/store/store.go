// Package store persists the document corpus in PostgreSQL so a restarted
// searcher can rebuild its in-memory index.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/postgres"
)

// Document status values kept in documents.status.
const (
	StatusIndexed = "INDEXED"
	StatusFailed  = "FAILED"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	indexed_at TIMESTAMPTZ
)`

// DocumentStore reads and writes the documents table.
type DocumentStore struct {
	db *postgres.Client
}

func NewDocumentStore(db *postgres.Client) *DocumentStore {
	return &DocumentStore{db: db}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

// Load streams every document not marked FAILED to fn in id order. It
// stops at the first error fn returns.
func (s *DocumentStore) Load(ctx context.Context, fn func(id, body string) error) (int, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE status <> $1 ORDER BY id`, StatusFailed)
	if err != nil {
		return 0, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return n, fmt.Errorf("scanning document row: %w", err)
		}
		if err := fn(id, body); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, fmt.Errorf("iterating documents: %w", err)
	}
	return n, nil
}

// Save inserts or overwrites the document body and resets its status.
func (s *DocumentStore) Save(ctx context.Context, id, body, status string) error {
	return s.db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, body, status, indexed_at)
			VALUES ($1, $2, $3, CASE WHEN $3 = 'INDEXED' THEN NOW() END)
			ON CONFLICT (id) DO UPDATE
			SET body = EXCLUDED.body, status = EXCLUDED.status, indexed_at = EXCLUDED.indexed_at`,
			id, body, status)
		if err != nil {
			return fmt.Errorf("saving document %s: %w", id, err)
		}
		return nil
	})
}

// UpdateStatus sets the status of an existing document. Unknown ids are
// ignored.
func (s *DocumentStore) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := s.db.DB.ExecContext(ctx,
		`UPDATE documents SET status = $1, indexed_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("updating status of %s: %w", id, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	return nil
}
