package main

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Version() is empty")
	}
	base := strings.TrimSpace(embeddedVersion)
	if !strings.Contains(v, base) && !strings.HasPrefix(v, "v") {
		t.Errorf("Version() = %q, want it to mention %q", v, base)
	}
}
