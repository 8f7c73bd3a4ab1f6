// Package config provides configuration loading for the shadenet CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the project-level config file.
const FileName = "shadenet.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config represents the complete shadenet configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	HTTP  HTTPConfig  `yaml:"http"`
}

// StoreConfig selects and configures the layer store.
type StoreConfig struct {
	// Backend is one of memory, file or redis.
	Backend string `yaml:"backend"`
	// Dir is the layer directory of the file backend.
	Dir string `yaml:"dir"`
	// Format is yaml or json for the file backend.
	Format string      `yaml:"format"`
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig configures the inspection server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".shadenet/layers",
			Format:  "yaml",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "shadenet:layer:",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the file backend")
		}
		if c.Store.Format != "yaml" && c.Store.Format != "json" {
			return fmt.Errorf("store.format must be yaml or json, got %q", c.Store.Format)
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
		if c.Store.Redis.TTL < 0 {
			return fmt.Errorf("store.redis.ttl must not be negative")
		}
	default:
		return fmt.Errorf("store.backend must be memory, file or redis, got %q", c.Store.Backend)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	return nil
}

// Load reads a YAML config file over the defaults, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv overlays SHADENET_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SHADENET_STORE":          &c.Store.Backend,
		"SHADENET_DIR":            &c.Store.Dir,
		"SHADENET_FORMAT":         &c.Store.Format,
		"SHADENET_REDIS_ADDR":     &c.Store.Redis.Addr,
		"SHADENET_REDIS_PASSWORD": &c.Store.Redis.Password,
		"SHADENET_REDIS_PREFIX":   &c.Store.Redis.Prefix,
		"SHADENET_LOG_LEVEL":      &c.Log.Level,
		"SHADENET_LOG_FORMAT":     &c.Log.Format,
		"SHADENET_HTTP_ADDR":      &c.HTTP.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("SHADENET_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHADENET_REDIS_DB: %w", err)
		}
		c.Store.Redis.DB = db
	}
	if v, ok := lookup("SHADENET_REDIS_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHADENET_REDIS_TTL: %w", err)
		}
		c.Store.Redis.TTL = ttl
	}
	return nil
}
