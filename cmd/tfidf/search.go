package main

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/corpus"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Index a directory of text files and rank them against a query",
	Example: `  # Rank every .txt file in ./doggos
  tfidf search --dir doggos love dogs

  # Markdown files, top 3 only
  tfidf search --dir notes --ext .md --limit 3 release checklist`,
	Args: cobra.MinimumNArgs(1),
	RunE: searchCmdRun,
}

type searchFlags struct {
	dir   string
	ext   string
	limit int
}

var searchArgs = searchFlags{
	ext:   corpus.DefaultExtension,
	limit: 10,
}

func init() {
	searchCmd.Flags().StringVar(&searchArgs.dir, "dir", "", "Directory holding the corpus files.")
	searchCmd.Flags().StringVar(&searchArgs.ext, "ext", searchArgs.ext, "Only index files with this extension.")
	searchCmd.Flags().IntVar(&searchArgs.limit, "limit", searchArgs.limit, "Maximum number of results to print.")
	searchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(searchCmd)
}

func searchCmdRun(cmd *cobra.Command, args []string) error {
	if searchArgs.limit < 1 {
		return errors.New("--limit must be at least 1")
	}
	start := time.Now()
	engine := indexer.NewEngine[string]()
	n, err := corpus.LoadDir(cmd.Context(), engine, searchArgs.dir, searchArgs.ext)
	if err != nil {
		return err
	}
	slog.Info("corpus indexed",
		"dir", searchArgs.dir,
		"documents", n,
		"terms", engine.TermCount(),
		"duration", time.Since(start),
	)

	query := strings.Join(args, " ")
	hits, err := engine.Search(query, searchArgs.limit)
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), query, hits)
	return nil
}
