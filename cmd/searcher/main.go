package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/consumer"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/indexer/store"
	ingesthandler "github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion/handler"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/ingestion/publisher"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/middleware"
	"github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/tfidf-search/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("search service failed", "error", err)
		os.Exit(1)
	}
	slog.Info("search service stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting search service", "port", cfg.Server.Port)
	m := metrics.New(prometheus.DefaultRegisterer)
	engine := indexer.NewEngine[string]()
	checker := health.NewChecker()
	checker.Register("index_engine", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents, %d terms", engine.DocumentCount(), engine.TermCount()),
		}
	})

	var docStore publisher.Store
	var source publisher.Source
	if cfg.Postgres.Enabled {
		db, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, starting with an empty corpus", "error", err)
		} else {
			defer db.Close()
			st := store.NewDocumentStore(db)
			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}
			docStore, source = st, st
			checker.Register("postgres", health.PingCheck(db.Ping, health.StatusDegraded))
		}
	}

	var notifier publisher.Notifier
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexComplete)
		defer producer.Close()
		notifier = producer
	}

	pub := publisher.New(engine, docStore, notifier, m)
	if source != nil {
		if _, err := pub.Restore(ctx, source); err != nil {
			return fmt.Errorf("restoring corpus: %w", err)
		}
	}

	var queryCache *cache.QueryCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, search caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis.CacheTTL)
			checker.Register("redis", health.PingCheck(redisClient.Ping, health.StatusDegraded))
			slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	mux := http.NewServeMux()
	handler.New(executor.New(engine, m), engine, queryCache, m, cfg.Search.DefaultLimit, cfg.Search.MaxResults).Register(mux)
	ingesthandler.New(pub).Register(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("search service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return shutdownMetrics(shutdownCtx)
		})
	}

	if cfg.Kafka.Enabled {
		ic := consumer.New(kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.DocumentIngest, consumer.HandleMessage(pub)))
		defer ic.Close()
		g.Go(func() error {
			return ic.Start(gctx)
		})
	}

	return g.Wait()
}
