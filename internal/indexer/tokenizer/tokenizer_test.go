package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "the cat sat on the mat", []string{"the", "cat", "sat", "on", "the", "mat"}},
		{"case folding", "Hello WORLD", []string{"hello", "world"}},
		{"punctuation", "Hello, world! It's-fine.", []string{"hello", "world", "it", "s", "fine"}},
		{"digits kept", "top10 results in 2024", []string{"top10", "results", "in", "2024"}},
		{"underscore splits", "snake_case", []string{"snake", "case"}},
		{"unicode letters", "Café naïve", []string{"café", "naïve"}},
		{"no stemming", "cats and dogs", []string{"cats", "and", "dogs"}},
		{"empty", "", []string{}},
		{"whitespace only", " \t\n ", []string{}},
		{"punctuation only", "?!.,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Terms(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Terms(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTermsDeterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox, jumps over the lazy dog! ", 50)
	first := Terms(text)
	second := Terms(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Terms is not deterministic")
	}
}

func TestNormalize(t *testing.T) {
	if term, ok := Normalize("  Dogs! "); !ok || term != "dogs" {
		t.Errorf("Normalize = (%q, %v), want (dogs, true)", term, ok)
	}
	if _, ok := Normalize("two words"); ok {
		t.Error("expected ok=false for two terms")
	}
	if _, ok := Normalize("..."); ok {
		t.Error("expected ok=false for no terms")
	}
}

func BenchmarkTerms(b *testing.B) {
	text := strings.Repeat(`Information retrieval systems combine tokenization and
        inverted indexes to rank documents by term frequency and inverse document
        frequency. `, 20)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		_ = Terms(text)
	}
}
