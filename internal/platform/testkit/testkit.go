// Package testkit holds helpers for tests that replace package level seams
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// global lock shared by every test that touches process wide state
var serial sync.Mutex

// Swap points *target at replacement until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds the global lock for the rest of the test.
// Use it before swapping seams or registries shared across packages tests in one binary
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
}

// MustContain fails the test unless out contains want. The full output goes to a temp file
// since log captures are often too long for the failure message
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("output does not contain %q, full output in %s", want, dump)
}
