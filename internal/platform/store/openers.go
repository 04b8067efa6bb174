package store

import (
	"context"
	"fmt"
	"time"

	chx "servicehistory/internal/platform/store/ch"
	"servicehistory/internal/platform/store/pg"
)

// seams
var (
	pgOpen = pg.Open
	chOpen = func(ctx context.Context, cfg chx.Config, tr chx.QueryTracer) (chClient, error) {
		return chx.Open(ctx, cfg, tr)
	}
	sleep = time.Sleep
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// Connection guardrails: ping with retry/backoff using the *pool* directly
	maxAttempts := cfg.PG.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = 6
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // no adapter, no SQL trace line
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil // publish adapter only after the pool is healthy
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	var tracer chx.QueryTracer
	if cfg.CH.LogSQL {
		tracer = chx.Tracer(s.Log)
	}
	c, err := chOpen(ctx, chx.Config{
		URL:          cfg.CH.URL,
		Role:         cfg.CH.ClientTag,
		Tag:          cfg.AppName,
		MaxOpenConns: cfg.CH.MaxOpenConns,
		PingTimeout:  cfg.CH.PingTimeout,
	}, tracer)
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
