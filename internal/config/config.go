// Package config loads rechat settings from a YAML file and RECHAT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/aretw0/rechat/internal/logging"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "rechat.yaml"

// EnvPrefix prefixes every environment override, e.g. RECHAT_STORE.
const EnvPrefix = "RECHAT"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel     string      `yaml:"log_level" envconfig:"LOG_LEVEL"`
	Store        string      `yaml:"store" envconfig:"STORE"`
	SessionDir   string      `yaml:"session_dir" envconfig:"SESSION_DIR"`
	MaxInputSize int         `yaml:"max_input_size" envconfig:"MAX_INPUT_SIZE"`
	Redis        RedisConfig `yaml:"redis" envconfig:"REDIS"`
	HTTP         HTTPConfig  `yaml:"http" envconfig:"HTTP"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" envconfig:"ADDR"`
	Password string        `yaml:"password" envconfig:"PASSWORD"`
	DB       int           `yaml:"db" envconfig:"DB"`
	Prefix   string        `yaml:"prefix" envconfig:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" envconfig:"TTL"`
	// Lock enables the distributed per-session lock.
	Lock bool `yaml:"lock" envconfig:"LOCK"`
}

type HTTPConfig struct {
	Port    int  `yaml:"port" envconfig:"PORT"`
	Metrics bool `yaml:"metrics" envconfig:"METRICS"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Store:        StoreFile,
		SessionDir:   ".rechat/sessions",
		MaxInputSize: 4096,
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "rechat:session:",
		},
		HTTP: HTTPConfig{
			Port:    8080,
			Metrics: true,
		},
	}
}

// Load layers defaults, the YAML file at path and the environment.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !slices.Contains([]string{StoreMemory, StoreFile, StoreRedis}, c.Store) {
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.HTTP.Port)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("%w: negative max_input_size", ErrInvalidConfig)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("%w: negative redis ttl", ErrInvalidConfig)
	}
	return nil
}
