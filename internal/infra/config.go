package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is sent with upstream requests to avoid bot detection
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds every application setting. Values from the YAML file can
// be overridden through RELAY_* environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	API struct {
		BaseURL           string   `yaml:"base_url"`
		TimeoutSec        int      `yaml:"timeout_sec"`
		MaxDays           int      `yaml:"max_days"`
		DefaultCurrencies []string `yaml:"default_currencies"`
	} `yaml:"api"`

	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"journal"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration matching the shipped
// configs/config.yaml. The console entry point falls back to it when no
// config file is present.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "rate-relay"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8080
	cfg.API.BaseURL = "https://api.privatbank.ua/p24api/exchange_rates"
	cfg.API.TimeoutSec = 10
	cfg.API.MaxDays = 10
	cfg.API.DefaultCurrencies = []string{"EUR", "USD"}
	cfg.Journal.Path = "data/journal.db"
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server host is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}
	if c.API.TimeoutSec <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}
	if c.API.MaxDays < 1 {
		return fmt.Errorf("max days must be at least 1")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal path is required when journal is enabled")
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// overrideWithEnv applies RELAY_* environment variables over file values.
func overrideWithEnv(cfg *Config) {
	if host := os.Getenv("RELAY_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("RELAY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if url := os.Getenv("RELAY_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if path := os.Getenv("RELAY_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
	}
}
