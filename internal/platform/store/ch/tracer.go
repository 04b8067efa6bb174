package ch

import (
	"context"
	"strings"

	"servicehistory/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement sent to clickhouse
type QueryEvent struct {
	SQL       string
	Rows      int // rows appended, inserts only
	ElapsedUS int64
	Err       error
}

// QueryTracer receives statement events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement at debug and failures at warn
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "ch").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	if ev.Err != nil {
		evt = z.log.Warn().Err(ev.Err)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Int("rows", ev.Rows).
		Msg("ch query")
}
