// Command etl runs the incremental CDC pipeline (C1-C7): it reads
// modified rows from the relational source, hydrates and merges them,
// and loads the results into the search index, advancing durable
// per-stream watermarks only after a successful load.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/config"
	"github.com/kinoflow/kinoflow/internal/etl"
	"github.com/kinoflow/kinoflow/internal/logging"
	"github.com/kinoflow/kinoflow/internal/searchport"
	"github.com/kinoflow/kinoflow/internal/sourcedb"
	"github.com/kinoflow/kinoflow/internal/state"
	"github.com/kinoflow/kinoflow/internal/supervisor"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.Info().Msg("starting kinoflow etl")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, err := sourcedb.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer source.Close()

	esClient, err := searchport.Dial(ctx, cfg.Search.Addresses())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to elasticsearch")
	}
	search := searchport.New(esClient)

	store, err := state.Open(cfg.ETL.StatePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open watermark state store")
	}

	retryPolicy := backoff.Policy{
		Initial:     cfg.ETL.BackoffInitial,
		Factor:      cfg.ETL.BackoffFactor,
		Cap:         cfg.ETL.BackoffCap,
		MaxAttempts: 0,
	}

	producer := etl.NewProducer(source, store, cfg.ETL.BatchLimit)
	loader := etl.NewLoader(search, retryPolicy)

	if err := loader.EnsureIndices(ctx); err != nil {
		logging.Fatal().Err(err).Msg("failed to ensure search indices")
	}

	orchestrator := etl.NewOrchestrator(producer, loader, store, cfg.ETL.IdleInterval)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build supervisor tree")
	}
	tree.AddETLService(orchestrator)

	logging.Info().Msg("etl orchestrator running")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("supervisor tree stopped unexpectedly")
	}
	logging.Info().Msg("etl stopped")
}
