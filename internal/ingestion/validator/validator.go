// Package validator checks document ids and bodies before they reach the
// engine and returns per-field error details.
package validator

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
)

const (
	maxIDLength   = 255
	maxTextLength = 1 << 20
)

// ValidationError holds per-field validation failure messages. It matches
// ErrInvalidArgument under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidArgument
}

// ValidateDocument checks an id and body. Empty text is allowed: such a
// document counts towards N but matches no query.
func ValidateDocument(id, text string) error {
	errs := make(map[string]string)
	if strings.TrimSpace(id) == "" {
		errs["id"] = "id is required"
	} else if len(id) > maxIDLength {
		errs["id"] = fmt.Sprintf("id must be at most %d bytes", maxIDLength)
	}
	if len(text) > maxTextLength {
		errs["text"] = fmt.Sprintf("text must be at most %d bytes", maxTextLength)
	} else if !utf8.ValidString(text) {
		errs["text"] = "text must be valid UTF-8"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
