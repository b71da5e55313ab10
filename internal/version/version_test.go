package version

import (
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, built string) {
	t.Helper()
	oldVersion, oldCommit, oldBuilt := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuilt })
	Version, Commit, BuildTime = version, commit, built
}

func TestString_DevBuild(t *testing.T) {
	stamp(t, "dev", "0123456789abcdef", "2026-10-01T00:00:00Z")

	got := String()
	if !strings.HasPrefix(got, "aerobridge dev") {
		t.Errorf("String() = %q, want aerobridge dev prefix", got)
	}
	if !strings.Contains(got, "commit: 0123456") || strings.Contains(got, "89abcdef") {
		t.Errorf("String() = %q, want 7-char commit", got)
	}
	if Release() != nil {
		t.Errorf("Release() = %v, want nil for dev build", Release())
	}
}

func TestString_Release(t *testing.T) {
	tests := []struct {
		stamped string
		want    string
	}{
		{"0.3.1", "aerobridge v0.3.1 "},
		{"v1.2.0", "aerobridge v1.2.0 "},
		{"2.0.0-rc.1", "aerobridge v2.0.0-rc.1 "},
		{"not-a-version", "aerobridge dev "},
	}
	for _, tt := range tests {
		t.Run(tt.stamped, func(t *testing.T) {
			stamp(t, tt.stamped, "abc", "now")
			if got := String(); !strings.HasPrefix(got, tt.want) {
				t.Errorf("String() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
