// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	BaseURL      string        `yaml:"base_url"` // public origin, used in redirects
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // funnel session lifetime
}

type CatalogConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type RegistryConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type WebhookConfig struct {
	LeadURL         string        `yaml:"lead_url"`
	RegistrationURL string        `yaml:"registration_url"`
	Timeout         time.Duration `yaml:"timeout"`
}

type SecurityConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionExpiry time.Duration `yaml:"session_expiry"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Registry RegistryConfig `yaml:"registry"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Security SecurityConfig `yaml:"security"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string = ""
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.Catalog.BaseURL == "" {
		return nil, errors.New("catalog.base_url is required")
	}
	if cfg.Catalog.APIKey == "" {
		return nil, errors.New("catalog.api_key is required")
	}
	if cfg.Webhook.LeadURL == "" {
		return nil, errors.New("webhook.lead_url is required")
	}
	if cfg.Webhook.RegistrationURL == "" {
		return nil, errors.New("webhook.registration_url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 30 * time.Minute
	}
	if cfg.Catalog.Timeout <= 0 {
		cfg.Catalog.Timeout = 10 * time.Second
	}
	if cfg.Catalog.CacheTTL <= 0 {
		cfg.Catalog.CacheTTL = 5 * time.Minute
	}
	if cfg.Registry.Timeout <= 0 {
		cfg.Registry.Timeout = 10 * time.Second
	}
	if cfg.Webhook.Timeout <= 0 {
		cfg.Webhook.Timeout = 30 * time.Second
	}
	if cfg.Security.SessionExpiry <= 0 {
		cfg.Security.SessionExpiry = 24 * time.Hour
	}
}
