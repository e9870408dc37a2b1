// Package handler serves the document endpoints: add, replace and remove.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion/validator"
	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
)

const maxBodyBytes = 2 << 20

// DocumentWriter applies document changes; *publisher.Publisher implements
// it.
type DocumentWriter interface {
	Add(ctx context.Context, id, text string) (*ingestion.DocumentResponse, error)
	Replace(ctx context.Context, id, text string) (*ingestion.DocumentResponse, error)
	Remove(ctx context.Context, id string) error
}

type Handler struct {
	writer DocumentWriter
	logger *slog.Logger
}

func New(writer DocumentWriter) *Handler {
	return &Handler{
		writer: writer,
		logger: slog.Default().With("component", "document-handler"),
	}
}

// Register mounts the document routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/documents", h.Add)
	mux.HandleFunc("PUT /api/v1/documents/{id}", h.Replace)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", h.Remove)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req ingestion.DocumentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.writer.Add(r.Context(), req.ID, req.Text)
	if err != nil {
		h.fail(w, r, "add", req.ID, err)
		return
	}
	logger.FromContext(r.Context()).Info("document added", "doc_id", resp.DocumentID, "terms", resp.Terms)
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req ingestion.ReplaceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.writer.Replace(r.Context(), id, req.Text)
	if err != nil {
		h.fail(w, r, "replace", id, err)
		return
	}
	logger.FromContext(r.Context()).Info("document replaced", "doc_id", id, "terms", resp.Terms)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.writer.Remove(r.Context(), id); err != nil {
		h.fail(w, r, "remove", id, err)
		return
	}
	logger.FromContext(r.Context()).Info("document removed", "doc_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}
	status := apperrors.HTTPStatusCode(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("document "+op+" failed", "doc_id", id, "error", err)
		h.writeError(w, status, "document "+op+" failed")
		return
	}
	log.Warn("document "+op+" rejected", "doc_id", id, "error", err, "status_code", status)
	h.writeError(w, status, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
