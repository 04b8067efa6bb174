package repokit

import (
	"context"
	"fmt"
	"time"
)

// pingTimeout applies when the caller's ctx has no deadline of its own
const pingTimeout = 5 * time.Second

// Pinger is any backend that can answer a liveness check
type Pinger interface {
	Ping(context.Context) error
}

// Guarder checks every configured backend at once, like (*store.Store).Guard
type Guarder interface {
	Guard(context.Context) error
}

// MustPing panics unless p answers within the ctx deadline or pingTimeout.
// Binaries call it at startup where there is nothing useful to do without the backend
func MustPing(ctx context.Context, name string, p Pinger) {
	if p == nil {
		panic(fmt.Sprintf("%s: not configured", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Errorf("%s unreachable: %w", name, err))
	}
}

// MustGuard panics when g reports any backend down
func MustGuard(ctx context.Context, g Guarder) {
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("startup checks failed: %w", err))
	}
}
