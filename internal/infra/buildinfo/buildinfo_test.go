package buildinfo

import (
	"strings"
	"testing"
)

func TestGetReflectsVars(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.Commit != Commit {
		t.Errorf("Commit = %q, want %q", info.Commit, Commit)
	}
}

func TestStringContainsEverything(t *testing.T) {
	s := String()
	for _, part := range []string{Version, Commit, BuildTime} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q missing %q", s, part)
		}
	}
}
