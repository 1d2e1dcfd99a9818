package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit = "v1.2.3", "abc1234"
	got := String("dawnpage")
	if !strings.HasPrefix(got, "dawnpage v1.2.3 (commit=abc1234, built=") {
		t.Fatalf("unexpected version line: %q", got)
	}
	if !strings.Contains(got, "go=") {
		t.Fatalf("missing go version: %q", got)
	}
}
