package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/ranker"
	"github.com/olekukonko/tablewriter"
)

func printResults(w io.Writer, query string, hits []ranker.ScoredDoc[string]) {
	if len(hits) == 0 {
		fmt.Fprintf(w, "no documents match %q\n", query)
		return
	}
	rows := make([][]string, 0, len(hits))
	for i, hit := range hits {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			hit.DocID,
			strconv.FormatFloat(hit.Score, 'f', 6, 64),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"rank", "document", "score"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
