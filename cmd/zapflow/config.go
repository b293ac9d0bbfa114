package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapflowhq/zapflow/pkg/adapters/file"
	"github.com/zapflowhq/zapflow/pkg/adapters/memory"
	"github.com/zapflowhq/zapflow/pkg/adapters/redis"
	"github.com/zapflowhq/zapflow/pkg/ports"
)

// ServerConfig is the structure of zapflow.yaml.
type ServerConfig struct {
	Addr  string      `yaml:"addr"`
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"` // memory | file | redis
	Dir     string      `yaml:"dir"`     // file backend
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	TTL      string `yaml:"ttl"` // Go duration, e.g. "720h"; empty = no expiration
}

// LoadServerConfig reads the YAML config file. A missing file yields the
// defaults, so running without a config just works.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:  ":8080",
		Store: StoreConfig{Backend: "file"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// buildStore instantiates the configured persistence backend.
func buildStore(cfg StoreConfig) (ports.DocumentStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return memory.NewStore(), nil
	case "file":
		return file.NewStore(cfg.Dir), nil
	case "redis":
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL != "" {
			ttl, err := time.ParseDuration(cfg.Redis.TTL)
			if err != nil {
				return nil, fmt.Errorf("invalid redis ttl: %w", err)
			}
			opts = append(opts, redis.WithTTL(ttl))
		}
		addr := cfg.Redis.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		return redis.New(addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s. Supported: memory, file, redis", cfg.Backend)
	}
}
