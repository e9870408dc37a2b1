package validator

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/errors"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		text   string
		fields []string
	}{
		{"valid", "doc1", "the cat sat", nil},
		{"empty text allowed", "doc1", "", nil},
		{"missing id", "", "text", []string{"id"}},
		{"blank id", "  \t", "text", []string{"id"}},
		{"long id", strings.Repeat("x", maxIDLength+1), "text", []string{"id"}},
		{"long text", "doc1", strings.Repeat("a", maxTextLength+1), []string{"text"}},
		{"invalid utf8", "doc1", "\xff\xfe", []string{"text"}},
		{"both", "", "\xff", []string{"id", "text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.id, tt.text)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if !errors.Is(err, apperrors.ErrInvalidArgument) {
				t.Error("validation error should match ErrInvalidArgument")
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.fields)
			}
			for _, f := range tt.fields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing field %q in %v", f, verr.Fields)
				}
			}
		})
	}
}
