// @title         Service History API
// @version       0.1.0
// @description   Ingests vehicle service history into ClickHouse

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"servicehistory/internal/core/version"
	"servicehistory/internal/modkit/repokit"
	"servicehistory/internal/platform/config"
	"servicehistory/internal/platform/logger"
	phttp "servicehistory/internal/platform/net/http"
	"servicehistory/internal/platform/store"

	"servicehistory/internal/services/api"
)

func main() {
	// .env before the logger so LOG_* from the file apply
	envErr := config.LoadDotenv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Msg("failed to load .env")
	}
	info := version.Info()
	l.Info().Str("version", info.Version).Str("commit", info.Commit).Msg("servicehistory-api starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// clickhouse is required, postgres only when SERVICE_PGSQL_DBURL is set
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend does not answer
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT and timeouts)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("servicehistory-api stopped")
}
