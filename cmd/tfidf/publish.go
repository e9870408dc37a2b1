package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion/validator"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/kafka"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish [id] [file]",
	Short: "Publish a document to the ingest topic of a running search service",
	Example: `  tfidf publish --brokers localhost:9092 doc1.txt ./doggos/doc1.txt`,
	Args:  cobra.ExactArgs(2),
	RunE:  publishCmdRun,
}

type publishFlags struct {
	brokers []string
	topic   string
	timeout time.Duration
}

var publishArgs = publishFlags{
	brokers: config.Default().Kafka.Brokers,
	topic:   config.Default().Kafka.Topics.DocumentIngest,
	timeout: 10 * time.Second,
}

func init() {
	publishCmd.Flags().StringSliceVar(&publishArgs.brokers, "brokers", publishArgs.brokers, "Kafka broker addresses.")
	publishCmd.Flags().StringVar(&publishArgs.topic, "topic", publishArgs.topic, "Ingest topic name.")
	publishCmd.Flags().DurationVar(&publishArgs.timeout, "timeout", publishArgs.timeout, "Time to wait for the broker to acknowledge.")
	rootCmd.AddCommand(publishCmd)
}

func publishCmdRun(cmd *cobra.Command, args []string) error {
	id, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validator.ValidateDocument(id, string(data)); err != nil {
		return err
	}

	producer := kafka.NewProducer(config.KafkaConfig{Brokers: publishArgs.brokers}, publishArgs.topic)
	defer producer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), publishArgs.timeout)
	defer cancel()
	err = producer.Publish(ctx, kafka.Event{
		Key: id,
		Value: ingestion.IngestEvent{
			DocumentID: id,
			Text:       string(data),
			IngestedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	cmd.Println(`✔`, fmt.Sprintf("document %s published to %s", id, publishArgs.topic))
	return nil
}
