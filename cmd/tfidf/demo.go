package main

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/corpus"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Rank the built-in three-document corpus against a query",
	Example: `  # Rank the sample corpus for "love dogs"
  tfidf demo

  # Write the sample corpus to ./doggos as well
  tfidf demo --write-dir doggos`,
	Args: cobra.NoArgs,
	RunE: demoCmdRun,
}

type demoFlags struct {
	query    string
	writeDir string
}

var demoArgs = demoFlags{
	query: "love dogs",
}

func init() {
	demoCmd.Flags().StringVar(&demoArgs.query, "query", demoArgs.query, "Query to rank the sample corpus against.")
	demoCmd.Flags().StringVar(&demoArgs.writeDir, "write-dir", "", "Also write the sample corpus files into this directory.")
	rootCmd.AddCommand(demoCmd)
}

func demoCmdRun(cmd *cobra.Command, args []string) error {
	if demoArgs.writeDir != "" {
		if err := corpus.WriteSample(demoArgs.writeDir); err != nil {
			return err
		}
		slog.Info("sample corpus written", "dir", demoArgs.writeDir)
	}
	engine := indexer.NewEngine[string]()
	if err := corpus.LoadMap(engine, corpus.Sample); err != nil {
		return err
	}
	hits, err := engine.Search(demoArgs.query, len(corpus.Sample))
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), demoArgs.query, hits)
	return nil
}
