package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: defaults, then an optional YAML file
// (MEMOMAP_CONFIG), then environment variables.
type Config struct {
	Port     int    `yaml:"port"`
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	APIKey   string `yaml:"api_key"`
	// Initial map view before the browser's optional geolocation recenter.
	MapCenterLat float64 `yaml:"map_center_lat"`
	MapCenterLng float64 `yaml:"map_center_lng"`
	MapZoom      int     `yaml:"map_zoom"`
}

func defaults() *Config {
	return &Config{
		Port:         8764,
		DBPath:       defaultDBPath(),
		LogLevel:     "info",
		MapCenterLat: 51.505,
		MapCenterLng: -0.09,
		MapZoom:      3,
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("MEMOMAP_CONFIG"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Port = envInt("MEMOMAP_PORT", cfg.Port)
	cfg.DBPath = envStr("MEMOMAP_DB_PATH", cfg.DBPath)
	cfg.LogLevel = envStr("MEMOMAP_LOG_LEVEL", cfg.LogLevel)
	cfg.APIKey = envStr("MEMOMAP_API_KEY", cfg.APIKey)
	cfg.MapCenterLat = envFloat("MEMOMAP_MAP_CENTER_LAT", cfg.MapCenterLat)
	cfg.MapCenterLng = envFloat("MEMOMAP_MAP_CENTER_LNG", cfg.MapCenterLng)
	cfg.MapZoom = envInt("MEMOMAP_MAP_ZOOM", cfg.MapZoom)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.MapCenterLat < -90 || c.MapCenterLat > 90 {
		return fmt.Errorf("map_center_lat must be between -90 and 90, got %f", c.MapCenterLat)
	}
	if c.MapCenterLng < -180 || c.MapCenterLng > 180 {
		return fmt.Errorf("map_center_lng must be between -180 and 180, got %f", c.MapCenterLng)
	}
	if c.MapZoom < 1 || c.MapZoom > 19 {
		return fmt.Errorf("map_zoom must be between 1 and 19, got %d", c.MapZoom)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "memomap.db"
	}
	return filepath.Join(home, ".memomap", "memomap.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
