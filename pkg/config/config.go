package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// Presentation
	Editor            string `yaml:"editor" env:"INV_EDITOR"`
	DisplayDateFormat string `yaml:"display_date_format" env:"INV_DISPLAY_DATE_FORMAT"`
	ColorTheme        string `yaml:"color_theme" env:"INV_COLOR_THEME"`

	// Form defaults
	DefaultStatus   string `yaml:"default_status" env:"INV_DEFAULT_STATUS"`
	DefaultLocation string `yaml:"default_location" env:"INV_DEFAULT_LOCATION"`

	// Export
	DefaultExportFormat string `yaml:"default_export_format" env:"INV_EXPORT_FORMAT"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms" env:"INV_WATCH_DEBOUNCE_MS"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Driver        string `yaml:"driver" env:"INV_STORAGE_DRIVER"`
	SQLitePath    string `yaml:"sqlite_path" env:"INV_SQLITE_PATH"`
	RedisAddr     string `yaml:"redis_addr" env:"INV_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"INV_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"INV_REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"INV_REDIS_PREFIX"`
}

// LogConfig controls the diagnostic log
type LogConfig struct {
	Level string `yaml:"level" env:"INV_LOG_LEVEL"`
	File  string `yaml:"file" env:"INV_LOG_FILE"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:      "file",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "inv:",
		},
		Log: LogConfig{
			Level: "info",
		},
		Editor:              "",
		DisplayDateFormat:   "Jan 02, 2006",
		ColorTheme:          "auto",
		DefaultStatus:       "Active",
		DefaultLocation:     "",
		DefaultExportFormat: "xlsx",
		WatchDebounceMS:     300,
	}
}

// LoadEnv loads the given dotenv files that exist and returns how many were read
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

// Load reads configuration from the specified file path, then applies INV_* environment overrides
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills essential values left empty by the file
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = defaults.Storage.RedisPrefix
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.DisplayDateFormat == "" {
		c.DisplayDateFormat = defaults.DisplayDateFormat
	}
	if c.DefaultStatus == "" {
		c.DefaultStatus = defaults.DefaultStatus
	}
	if c.DefaultExportFormat == "" {
		c.DefaultExportFormat = defaults.DefaultExportFormat
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = defaults.WatchDebounceMS
	}
}

// Validate rejects settings the application cannot act on
func (c *Config) Validate() error {
	if !contains([]string{"file", "sqlite", "redis", "memory"}, c.Storage.Driver) {
		return fmt.Errorf("storage driver must be one of file, sqlite, redis, memory; got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisAddr == "" {
		return fmt.Errorf("storage redis_addr is required when driver is 'redis'")
	}
	if !contains([]string{"xlsx", "json", "yaml"}, c.DefaultExportFormat) {
		return fmt.Errorf("default_export_format must be one of xlsx, json, yaml; got %q", c.DefaultExportFormat)
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
