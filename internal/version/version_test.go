package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
}

func TestGetWithLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	GitCommit = "abc1234"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.0.0" {
		t.Errorf("expected '1.0.0', got %q", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("expected build time preserved, got %q", info.BuildTime)
	}
}

func TestString(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.3"
	GitCommit = "deadbee"
	BuildTime = "2026-01-15T10:30:00Z"

	s := String()
	if !strings.HasPrefix(s, "1.2.3-deadbee") {
		t.Errorf("unexpected version string: %q", s)
	}
	if !strings.Contains(s, "built 2026-01-15") {
		t.Errorf("expected build time in string: %q", s)
	}
}
