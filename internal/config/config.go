package config

import (
	"fmt"
	"net/url"
	"os"

	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. The refresh interval, window
// size and pair list are fixed and not configurable here.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL     string `yaml:"base_url"`
		DefaultPair string `yaml:"default_pair"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding values already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := gotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TICKER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DEFAULT_PAIR"); v != "" {
		cfg.DataSource.DefaultPair = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8501"
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = collector.DefaultGeminiURL
	}
	if cfg.DataSource.DefaultPair == "" {
		cfg.DataSource.DefaultPair = string(model.DefaultPair)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if _, err := model.ParsePair(c.DataSource.DefaultPair); err != nil {
		return fmt.Errorf("data_source.default_pair: %w", err)
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("proxy must be an absolute URL such as http://host:port, got %q", c.Proxy)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}
