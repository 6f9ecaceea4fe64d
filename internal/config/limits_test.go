package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLimits(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limits.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultLimitsValidate(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Fatalf("compiled-in defaults do not validate: %v", err)
	}
}

func TestLoadLimitsPartialOverride(t *testing.T) {
	path := writeLimits(t, "terms: 128\ncontext_depth: 8\n")
	limits, err := LoadLimits(path)
	if err != nil {
		t.Fatal(err)
	}
	if limits.Terms != 128 || limits.ContextDepth != 8 {
		t.Errorf("overridden fields = %d, %d; want 128, 8", limits.Terms, limits.ContextDepth)
	}
	// omitted fields keep their defaults
	def := DefaultLimits()
	if limits.Levels != def.Levels || limits.Symbols != def.Symbols || limits.Env != def.Env {
		t.Errorf("omitted fields changed: %+v", limits)
	}
}

func TestLoadLimitsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"terms too small", "terms: 0\n"},
		{"levels below reserved", "levels: 1\n"},
		{"malformed yaml", "terms: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadLimits(writeLimits(t, tt.content)); err == nil {
				t.Errorf("LoadLimits accepted %q", tt.content)
			}
		})
	}
}

func TestLoadLimitsMissingFile(t *testing.T) {
	if _, err := LoadLimits(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadLimits succeeded on a missing file")
	}
}

func TestArenaBytesCoversStores(t *testing.T) {
	l := DefaultLimits()
	if l.ArenaBytes() < l.Terms*48+l.Levels*16 {
		t.Errorf("ArenaBytes() = %d, smaller than the stores it must back", l.ArenaBytes())
	}
}
