package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
)

func TestLoadDirMatchesExtension(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSample(dir); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("dogs dogs dogs"), 0o644)
	os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755)

	e := indexer.NewEngine[string]()
	n, err := LoadDir(context.Background(), e, dir, "")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if n != 3 || e.DocumentCount() != 3 {
		t.Fatalf("loaded %d, DocumentCount %d, want 3", n, e.DocumentCount())
	}
	if _, ok := e.Document("notes.md"); ok {
		t.Error("notes.md should be skipped by extension")
	}

	hits, err := e.Search("love dogs", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 || hits[0].DocID != "doc3.txt" || hits[1].DocID != "doc1.txt" {
		t.Errorf("hits = %+v, want doc3.txt then doc1.txt", hits)
	}
}

func TestLoadDirCustomExtension(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.md"), []byte("alpha"), 0o644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0o644)

	e := indexer.NewEngine[string]()
	if _, err := LoadDir(context.Background(), e, dir, ".md"); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if e.DocumentCount() != 1 || e.DocumentFrequency("alpha") != 1 {
		t.Errorf("DocumentCount = %d", e.DocumentCount())
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(context.Background(), indexer.NewEngine[string](), filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWriteSampleKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc1.txt")
	os.WriteFile(path, []byte("custom"), 0o644)
	if err := WriteSample(dir); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "custom" {
		t.Errorf("doc1.txt overwritten: %q", data)
	}
}

func TestLoadMap(t *testing.T) {
	e := indexer.NewEngine[string]()
	if err := LoadMap(e, Sample); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := e.DocumentFrequency("dogs"); got != 2 {
		t.Errorf("df(dogs) = %d, want 2", got)
	}
	if err := LoadMap(e, Sample); err == nil {
		t.Error("reloading the same ids should fail as duplicates")
	}
}
