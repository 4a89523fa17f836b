package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8764 {
		t.Fatalf("unexpected default port: %d", cfg.Port)
	}
	if cfg.DBPath == "" {
		t.Fatal("empty default db path")
	}
	if cfg.MapZoom != 3 {
		t.Fatalf("unexpected default zoom: %d", cfg.MapZoom)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MEMOMAP_PORT", "9000")
	t.Setenv("MEMOMAP_DB_PATH", "/tmp/custom.db")
	t.Setenv("MEMOMAP_MAP_CENTER_LAT", "35.68")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9000 || cfg.DBPath != "/tmp/custom.db" || cfg.MapCenterLat != 35.68 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memomap.yaml")
	data := "port: 9100\nmap_zoom: 10\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MEMOMAP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9100 || cfg.MapZoom != 10 || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memomap.yaml")
	if err := os.WriteFile(path, []byte("port: 9100\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MEMOMAP_CONFIG", path)
	t.Setenv("MEMOMAP_PORT", "9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("env did not win over file: %d", cfg.Port)
	}
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"MEMOMAP_PORT":           "70000",
		"MEMOMAP_MAP_CENTER_LAT": "100",
		"MEMOMAP_MAP_CENTER_LNG": "-200",
		"MEMOMAP_MAP_ZOOM":       "25",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", key, value)
			}
		})
	}
}
