// Package corpus loads documents into an engine from a directory of text
// files and carries the small sample corpus used by the demo command.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"golang.org/x/sync/errgroup"
)

// DefaultExtension selects the files LoadDir indexes when none is given.
const DefaultExtension = ".txt"

const readConcurrency = 8

// Sample is the three-document demo corpus, keyed by file name.
var Sample = map[string]string{
	"doc1.txt": "dogs are the greatest pets",
	"doc2.txt": "cats seem pretty okay",
	"doc3.txt": "i love dogs",
}

// LoadMap adds every entry of docs to e in id order.
func LoadMap(e *indexer.Engine[string], docs map[string]string) error {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := e.AddDocument(id, docs[id]); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir indexes the regular files directly under dir whose names end in
// ext. The file name is the document id. Subdirectories are not visited.
func LoadDir(ctx context.Context, e *indexer.Engine[string], dir, ext string) (int, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading corpus directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			if err := e.AddDocument(name, string(data)); err != nil {
				return fmt.Errorf("indexing %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(names), nil
}

// WriteSample writes Sample into dir, creating it if needed. Existing files
// are left untouched.
func WriteSample(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for name, text := range Sample {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
