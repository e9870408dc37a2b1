// Package ingestion defines the request bodies and Kafka event schemas used
// to get documents into the search engine.
package ingestion

import "time"

// DocumentRequest is the JSON body of POST /api/v1/documents.
type DocumentRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ReplaceRequest is the JSON body of PUT /api/v1/documents/{id}.
type ReplaceRequest struct {
	Text string `json:"text"`
}

// DocumentResponse is returned after a document change is applied.
type DocumentResponse struct {
	DocumentID    string `json:"document_id"`
	Status        string `json:"status"`
	Terms         int    `json:"terms"`
	DocumentCount int    `json:"document_count"`
}

// IngestEvent is the payload of the document-ingest topic. The message key
// is the document id.
type IngestEvent struct {
	DocumentID string    `json:"document_id"`
	Text       string    `json:"text"`
	IngestedAt time.Time `json:"ingested_at"`
}

// IndexCompleteEvent is published once a document is searchable.
type IndexCompleteEvent struct {
	DocumentID string    `json:"document_id"`
	Status     string    `json:"status"`
	Generation uint64    `json:"generation"`
	IndexedAt  time.Time `json:"indexed_at"`
}
