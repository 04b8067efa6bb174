package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := &Store{}
	if err := WithLogger(zerolog.New(&buf).With().Str("component", "store").Logger())(s); err != nil {
		t.Fatalf("WithLogger: %v", err)
	}

	s.Log.Warn().Int("attempt", 1).Msg("postgres not ready")
	if out := buf.String(); !strings.Contains(out, `"component":"store"`) || !strings.Contains(out, "postgres not ready") {
		t.Fatalf("log output = %s", out)
	}
}
