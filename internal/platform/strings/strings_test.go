package strings

import (
	"testing"

	kit "servicehistory/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); len(got) != 2 {
		t.Fatalf("nil input gave %v", got)
	}
	if got := IfEmpty([]string{}, def); len(got) != 2 {
		t.Fatalf("empty input gave %v", got)
	}
	if got := IfEmpty([]string{"PUT"}, def); len(got) != 1 || got[0] != "PUT" {
		t.Fatalf("non-empty input gave %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString(" servicehistory ", "module name"); got != " servicehistory " {
		t.Fatalf("got %q", got)
	}
	kit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"service-history":      "/service-history",
		"/meta/":               "/meta",
		"  //meta//  ":         "/meta",
		"/service-history/v2/": "/service-history/v2",
	} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		kit.MustPanic(t, func() { MustPrefix(in) })
	}
}
