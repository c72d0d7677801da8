package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/clipfetch/clipfetch/core/config"
	coredatabase "github.com/clipfetch/clipfetch/core/database"
	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/health"
)

// Session store backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	Backend       string `yaml:"backend" envconfig:"SESSION_BACKEND"`
	RedisAddr     string `yaml:"redis_addr" envconfig:"SESSION_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" envconfig:"SESSION_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" envconfig:"SESSION_REDIS_DB"`
	// TTLSeconds applies to the redis backend only; 0 disables expiry.
	TTLSeconds int `yaml:"ttl_seconds" envconfig:"SESSION_TTL_SECONDS"`
}

// Config is the full application configuration: the shared core
// sections plus the bot's own collaborators.
type Config struct {
	Core      coreconfig.Config   `yaml:"core"`
	Extractor extractor.Config    `yaml:"extractor"`
	Session   SessionConfig       `yaml:"session"`
	Database  coredatabase.Config `yaml:"database"`
	Health    health.Config       `yaml:"health"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads YAML then environment overrides and validates.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Extractor.BaseURL) == "" {
		return fmt.Errorf("extractor.base_url is required")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if backend == "" {
		backend = SessionBackendMemory
	}
	switch backend {
	case SessionBackendMemory, SessionBackendPostgres, SessionBackendRedis:
	default:
		return fmt.Errorf("invalid session.backend %q; allowed: memory, postgres, redis", cfg.Session.Backend)
	}
	if backend == SessionBackendRedis && strings.TrimSpace(cfg.Session.RedisAddr) == "" {
		return fmt.Errorf("session.redis_addr is required for the redis backend")
	}
	cfg.Session.Backend = backend
	return nil
}
