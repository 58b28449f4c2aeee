// Command api runs the Query API (C8-C11): a read-only HTTP surface over
// the search index, fronted by a TTL cache.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kinoflow/kinoflow/internal/api"
	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/config"
	"github.com/kinoflow/kinoflow/internal/logging"
	"github.com/kinoflow/kinoflow/internal/searchport"
	"github.com/kinoflow/kinoflow/internal/service"
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
	logging.Info().Msg("starting kinoflow query api")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisClient, err := cacheport.Dial(ctx, cfg.Redis.Addr())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	esClient, err := searchport.Dial(ctx, cfg.Search.Addresses())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to elasticsearch")
	}

	search := searchport.New(esClient)
	filmCache := cacheport.New(redisClient, "film")
	genreCache := cacheport.New(redisClient, "genre")
	personCache := cacheport.New(redisClient, "person")

	films := service.NewFilmService(search, filmCache)
	genres := service.NewGenreService(search, genreCache)
	persons := service.NewPersonService(search, personCache)

	router := api.NewRouter(films, genres, persons)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build supervisor tree")
	}
	tree.AddAPIService(api.NewServerService(httpServer, serverShutdownTimeout(cfg)))

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("query api listening")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("supervisor tree stopped unexpectedly")
	}
	logging.Info().Msg("query api stopped")
}

func serverShutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
