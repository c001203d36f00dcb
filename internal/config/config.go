package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tokenfold/tokenfold/internal/errors"
)

// CacheConfig contains response cache settings.
type CacheConfig struct {
	Enabled       *bool  `yaml:"enabled,omitempty"`
	TTL           string `yaml:"ttl,omitempty"`            // e.g., "24h"
	MaxSize       int    `yaml:"max_size,omitempty"`       // entry count
	SweepInterval int    `yaml:"sweep_interval,omitempty"` // operations between expiry sweeps
}

// CompressConfig contains input compression settings.
type CompressConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// PricingConfig overrides the per-million-token rates used for cost
// estimates, e.g. when pointing at a different model or endpoint.
type PricingConfig struct {
	InputPerMillion  float64 `yaml:"input_per_million,omitempty"`
	OutputPerMillion float64 `yaml:"output_per_million,omitempty"`
}

// Config represents the tokenfold configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Model    string         `yaml:"model,omitempty"`
	Strategy string         `yaml:"strategy,omitempty"` // auto, starter, pro, premium
	License  string         `yaml:"license,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Compress CompressConfig `yaml:"compress,omitempty"`
	Pricing  PricingConfig  `yaml:"pricing,omitempty"`
}

// Default values.
const (
	DefaultVersion       = 1
	DefaultModel         = "gpt-4o-mini"
	DefaultStrategy      = "auto"
	DefaultCacheTTL      = "24h"
	DefaultCacheMaxSize  = 1000
	DefaultSweepInterval = 100

	// gpt-4o-mini rates, USD per million tokens.
	DefaultInputPerMillion  = 0.150
	DefaultOutputPerMillion = 0.600
)

// Load reads config from the default location. A missing file yields
// the defaults rather than an error; the tool works unconfigured.
func Load() (*Config, error) {
	return LoadFrom(NewPaths().ConfigFile)
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	return SaveTo(cfg, NewPaths().ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	switch c.Strategy {
	case "auto", "starter", "pro", "premium":
	default:
		return errors.ConfigInvalid("strategy must be one of: auto, starter, pro, premium")
	}

	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return errors.ConfigInvalid("invalid cache.ttl format, use Go duration format (e.g., 24h)")
		}
	}
	if c.Cache.MaxSize < 0 {
		return errors.ConfigInvalid("cache.max_size must not be negative")
	}
	if c.Cache.SweepInterval < 0 {
		return errors.ConfigInvalid("cache.sweep_interval must not be negative")
	}
	if c.Pricing.InputPerMillion < 0 || c.Pricing.OutputPerMillion < 0 {
		return errors.ConfigInvalid("pricing rates must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = DefaultCacheMaxSize
	}
	if c.Cache.SweepInterval == 0 {
		c.Cache.SweepInterval = DefaultSweepInterval
	}
	if c.Pricing.InputPerMillion == 0 {
		c.Pricing.InputPerMillion = DefaultInputPerMillion
	}
	if c.Pricing.OutputPerMillion == 0 {
		c.Pricing.OutputPerMillion = DefaultOutputPerMillion
	}
}

// CacheTTL returns the parsed cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		d, _ = time.ParseDuration(DefaultCacheTTL)
	}
	return d
}

// CacheEnabled reports whether response caching is on. On by default.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// CompressEnabled reports whether input compression is on. On by default.
func (c *Config) CompressEnabled() bool {
	return c.Compress.Enabled == nil || *c.Compress.Enabled
}

// LoadEnv loads a .env file from the working directory when present,
// then returns the OpenAI API key from the environment.
func LoadEnv() string {
	_ = godotenv.Load()
	return os.Getenv("OPENAI_API_KEY")
}

// LicenseFromEnv returns the license key from the environment, loading
// a .env file first when present.
func LicenseFromEnv() string {
	_ = godotenv.Load()
	return os.Getenv("TOKENFOLD_LICENSE")
}
