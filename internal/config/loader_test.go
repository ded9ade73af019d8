package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `refresh: 5s
sort: rss
columns: [pid, name, rss]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got, want := cfg.Refresh.Duration, 5*time.Second; got != want {
		t.Fatalf("refresh = %v, want %v", got, want)
	}
	if got, want := cfg.Sort, "rss"; got != want {
		t.Fatalf("sort = %q, want %q", got, want)
	}
	if got, want := len(cfg.Columns), 3; got != want {
		t.Fatalf("columns = %v, want %d entries", cfg.Columns, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.Refresh != want.Refresh || cfg.Sort != want.Sort {
		t.Fatalf("missing file produced %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, "sort: name\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got, want := cfg.Sort, "name"; got != want {
		t.Fatalf("sort = %q, want %q", got, want)
	}
	if got, want := cfg.Refresh, Default().Refresh; got != want {
		t.Fatalf("refresh = %v, want default %v", got, want)
	}
	if got, want := len(cfg.Columns), len(Default().Columns); got != want {
		t.Fatalf("columns = %v, want defaults", cfg.Columns)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "unknown field", content: "interval: 2s\n", wantMsg: "decode"},
		{name: "unknown sort key", content: "sort: priority\n", wantMsg: "unknown key"},
		{name: "unknown column", content: "columns: [pid, nice]\n", wantMsg: "unknown column"},
		{name: "refresh too fast", content: "refresh: 10ms\n", wantMsg: "floor"},
		{name: "malformed duration", content: "refresh: soon\n", wantMsg: "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load succeeded, want error containing %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadExpandsEnvInPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("sort: time\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SYSQ_TEST_CONFIG_DIR", dir)

	cfg, err := Load(filepath.Join("${SYSQ_TEST_CONFIG_DIR}", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got, want := cfg.Sort, "time"; got != want {
		t.Fatalf("sort = %q, want %q", got, want)
	}
}
