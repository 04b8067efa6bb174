package store

import (
	"context"
	"errors"
	"testing"

	"servicehistory/internal/platform/store/ch"
	"servicehistory/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func stubCHOpen(t *testing.T, fc *fakeCHClient, err error) *ch.Config {
	t.Helper()
	var seen ch.Config
	testkit.Swap(t, &chOpen, func(_ context.Context, cfg ch.Config, _ ch.QueryTracer) (chClient, error) {
		seen = cfg
		if err != nil {
			return nil, err
		}
		return fc, nil
	})
	return &seen
}

// TestOpen_CHOnly_SetsCHAndLeavesPGNil exercises the CH success path from Open
func TestOpen_CHOnly_SetsCHAndLeavesPGNil(t *testing.T) {
	fc := &fakeCHClient{}
	seen := stubCHOpen(t, fc, nil)

	ctx := context.Background()
	cfg := Config{
		AppName: "servicehistory",
		CH: CHConfig{
			Enabled:      true,
			URL:          "clickhouse://local:9000",
			ClientTag:    "api",
			MaxOpenConns: 3,
			LogSQL:       true,
		},
	}

	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.CH == nil {
		t.Fatalf("CH not initialized")
	}
	if s.PG != nil {
		t.Fatalf("unexpected PG seam %T", s.PG)
	}
	if seen.Role != "api" || seen.Tag != "servicehistory" || seen.MaxOpenConns != 3 {
		t.Fatalf("config not forwarded: %+v", *seen)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(ctx); err != nil || !fc.closed {
		t.Fatalf("Close returned %v closed=%v", err, fc.closed)
	}
}

// TestOpen_CHError_Bubbles covers the CH error path
func TestOpen_CHError_Bubbles(t *testing.T) {
	boom := errors.New("ch down")
	stubCHOpen(t, nil, boom)

	s, err := Open(context.Background(), Config{CH: CHConfig{Enabled: true, URL: "clickhouse://x"}})
	if !errors.Is(err, boom) || s != nil {
		t.Fatalf("expected ch error and nil store, got %v %#v", err, s)
	}
}

// TestOpen_PGEnabled_BadURL_ClosesCH verifies a PG failure releases the already opened CH
func TestOpen_PGEnabled_BadURL_ClosesCH(t *testing.T) {
	fc := &fakeCHClient{}
	stubCHOpen(t, fc, nil)

	cfg := Config{
		CH: CHConfig{Enabled: true, URL: "clickhouse://x"},
		PG: PGConfig{Enabled: true, URL: "://bad"},
	}
	s, err := Open(context.Background(), cfg)
	if err == nil || s != nil {
		t.Fatalf("expected Open error for bad PG URL, got store=%#v", s)
	}
	if !fc.closed {
		t.Fatalf("expected CH closed after PG failure")
	}
}

// TestOpen_OptionsApplied_NoPanicOnWithLogger exercises the WithLogger option path
func TestOpen_OptionsApplied_NoPanicOnWithLogger(t *testing.T) {
	var zl zerolog.Logger

	s, err := Open(context.Background(), Config{}, WithLogger(zl))
	if err != nil || s == nil {
		t.Fatalf("Open returned %v %v", s, err)
	}
	if e := s.Close(context.Background()); e != nil {
		t.Fatalf("Close on empty store returned error: %v", e)
	}
}

func TestOpen_OptionError(t *testing.T) {
	boom := errors.New("bad option")
	_, err := Open(context.Background(), Config{}, func(*Store) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected option error, got %v", err)
	}
}

func TestClose_NilStore(t *testing.T) {
	var s *Store
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
}
