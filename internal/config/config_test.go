package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catmap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
image_path = "src/imagen/tsubaki.jpg"
iterations = 12
reduce_period = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImagePath != "src/imagen/tsubaki.jpg" || cfg.Iterations != 12 || !cfg.ReducePeriod {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ThumbnailHeight != 250 || cfg.WindowWidth != 550 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSub string
	}{
		{"unknown key", `colour = "red"`, "unknown key"},
		{"negative iterations", `iterations = -3`, "iterations must be non-negative"},
		{"zero thumbnail", `thumbnail_height = 0`, "thumbnail_height"},
		{"bad window", `window_width = -1`, "window size"},
		{"syntax", `iterations = `, "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("err = %v, want containing %q", err, tt.wantSub)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
