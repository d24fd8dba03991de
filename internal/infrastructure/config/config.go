package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	AI        AIConfig        `toml:"ai"`
	Storage   StorageConfig   `toml:"storage"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port"`
	Host string `envconfig:"HOST" toml:"host"`
}

// AIConfig holds AI client configuration.
type AIConfig struct {
	Provider     string        `envconfig:"AI_PROVIDER" toml:"provider"`
	APIKey       string        `envconfig:"AI_API_KEY" toml:"api_key"`
	Model        string        `envconfig:"AI_MODEL" toml:"model"`
	Timeout      time.Duration `envconfig:"AI_TIMEOUT" toml:"timeout"`
	CacheSize    int           `envconfig:"AI_CACHE_SIZE" toml:"cache_size"`
	DisableCache bool          `envconfig:"AI_CACHE_DISABLED" toml:"cache_disabled"`
	DisableUsage bool          `envconfig:"AI_USAGE_DISABLED" toml:"usage_disabled"`
	MaxRetries   int           `envconfig:"AI_MAX_RETRIES" toml:"max_retries"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	DataDir  string `envconfig:"DATA_DIR" toml:"data_dir"`
	InMemory bool   `envconfig:"STORAGE_IN_MEMORY" toml:"in_memory"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled"`
}

// Load loads configuration from environment variables. When path is
// non-empty, the TOML file there is applied first and the environment
// overrides it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		AI: AIConfig{
			Provider:   "mock",
			Timeout:    30 * time.Second,
			CacheSize:  100,
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
