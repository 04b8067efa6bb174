package main

import (
	"context"
	"flag"
	"time"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/modkit/repokit"
	"servicehistory/internal/platform/config"
	"servicehistory/internal/platform/logger"
	"servicehistory/internal/platform/store"

	shmod "servicehistory/internal/services/servicehistory/module"
	shrepo "servicehistory/internal/services/servicehistory/repo"
)

func main() {
	var (
		fRecreate = flag.Bool("recreate", false, "drop destination tables before creating them (destroys data)")
		fOnly     = flag.String("schema", "", "bootstrap only this payload version: v1 | v2 (default both)")
		fTimeout  = flag.Duration("timeout", 2*time.Minute, "overall bootstrap timeout")
		fEnv      = flag.String("env", ".env", "optional env file, existing variables win")
	)
	flag.Parse()

	envErr := config.LoadDotenv(*fEnv)
	root := config.New()
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Str("file", *fEnv).Msg("failed to load env file")
	}

	v1, v2, err := shmod.Targets(root)
	if err != nil {
		l.Panic().Err(err).Msg("bad clickhouse target")
	}
	schemas := []core.Schema{v1, v2}
	switch *fOnly {
	case "":
	case core.SchemaV1.Name:
		schemas = schemas[:1]
	case core.SchemaV2.Name:
		schemas = schemas[1:]
	default:
		l.Panic().Str("schema", *fOnly).Msg("-schema must be v1 or v2")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *fTimeout)
	defer cancel()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "migrate"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustPing(ctx, "clickhouse", st.CH)

	if *fRecreate {
		l.Warn().Msg("-recreate set, existing service history rows will be dropped")
	}
	if err := shrepo.Bootstrap(ctx, st.CH, st.PG, schemas, shrepo.BootstrapOptions{Recreate: *fRecreate}); err != nil {
		l.Panic().Err(err).Msg("bootstrap failed")
	}
	l.Info().Int("schemas", len(schemas)).Msg("bootstrap complete")
}
