package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Generator struct {
		Provider string
		APIKey   string
		Model    string
		BaseURL  string
		Prompt   string
		Catalog  string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	Client struct {
		BaseURL string
		Timeout time.Duration
	}
	Store struct {
		Driver string
		Dir    string
		DSN    string
	}
}

// Load reads config from environment (AMBIENT_ prefix) and optional ambient-prompt.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AMBIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("ambient-prompt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("generator.provider", "template")
	v.SetDefault("ratelimit.rps", 0)
	v.SetDefault("ratelimit.burst", 5)
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("store.driver", "file")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Generator.Provider = v.GetString("generator.provider")
	cfg.Generator.APIKey = v.GetString("generator.api_key")
	cfg.Generator.Model = v.GetString("generator.model")
	cfg.Generator.BaseURL = v.GetString("generator.base_url")
	cfg.Generator.Prompt = v.GetString("generator.prompt")
	cfg.Generator.Catalog = v.GetString("generator.catalog")
	cfg.RateLimit.RPS = v.GetFloat64("ratelimit.rps")
	cfg.RateLimit.Burst = v.GetInt("ratelimit.burst")
	cfg.Client.BaseURL = strings.TrimRight(v.GetString("client.base_url"), "/")
	cfg.Store.Driver = v.GetString("store.driver")
	cfg.Store.Dir = v.GetString("store.dir")
	cfg.Store.DSN = v.GetString("store.dsn")

	timeout, err := time.ParseDuration(v.GetString("client.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid AMBIENT_CLIENT_TIMEOUT: %w", err)
	}
	cfg.Client.Timeout = timeout

	if cfg.Store.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Store.Dir = filepath.Join(home, ".ambient-prompt")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field combinations that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("AMBIENT_CLIENT_TIMEOUT must be positive")
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("AMBIENT_CLIENT_BASE_URL is required")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("AMBIENT_RATELIMIT_RPS must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("AMBIENT_RATELIMIT_BURST must be positive when rate limiting is enabled")
	}

	switch c.Generator.Provider {
	case "", "template":
	case "anthropic", "openai", "openai-compatible":
		if c.Generator.APIKey == "" {
			return fmt.Errorf("AMBIENT_GENERATOR_API_KEY is required for provider %q", c.Generator.Provider)
		}
	default:
		return fmt.Errorf("AMBIENT_GENERATOR_PROVIDER %q is not supported (template, anthropic, openai)", c.Generator.Provider)
	}

	switch c.Store.Driver {
	case "file", "memory":
	case "sqlite3":
		if c.Store.DSN == "" {
			c.Store.DSN = filepath.Join(c.Store.Dir, "state.db")
		}
	case "mysql", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("AMBIENT_STORE_DSN is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("AMBIENT_STORE_DRIVER %q is not supported (file, memory, sqlite3, mysql, postgres)", c.Store.Driver)
	}
	return nil
}
