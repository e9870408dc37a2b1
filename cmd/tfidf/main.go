package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
	"github.com/spf13/cobra"
)

var VERSION = "0.0.0-dev.0"

var rootCmd = &cobra.Command{
	Use:           "tfidf",
	Version:       VERSION,
	Short:         "Index text files and rank them against queries by TF-IDF",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetupWriter(os.Stderr, rootArgs.logLevel, "text")
	},
}

type rootFlags struct {
	logLevel string
}

var rootArgs = rootFlags{
	logLevel: "warn",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootArgs.logLevel, "log-level", rootArgs.logLevel,
		"Log level: debug, info, warn or error.")
	rootCmd.SetOut(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}
