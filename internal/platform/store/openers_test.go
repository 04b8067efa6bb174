package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"servicehistory/internal/platform/testkit"
)

// 127.0.0.1:1 is closed on every sane host so pings fail fast
const closedPGURL = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"

func TestOpenPG_GivesUpAfterRetries(t *testing.T) {
	slept := 0
	testkit.Swap(t, &sleep, func(time.Duration) { slept++ })

	s := &Store{}
	_, err := openPG(context.Background(), Config{PG: PGConfig{
		URL:            closedPGURL,
		ConnectRetries: 2,
		PingTimeout:    500 * time.Millisecond,
	}}, s)
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected retry exhaustion, got %v", err)
	}
	if slept != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %d", slept)
	}
}

func TestOpenPG_ParentAlreadyCanceled(t *testing.T) {
	testkit.Swap(t, &sleep, func(time.Duration) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := openPG(ctx, Config{PG: PGConfig{URL: closedPGURL, ConnectRetries: 5}}, &Store{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOpenPG_ParseError(t *testing.T) {
	if _, err := openPG(context.Background(), Config{PG: PGConfig{URL: "://bad"}}, &Store{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
