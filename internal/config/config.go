package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string   `yaml:"addr"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`
	Providers struct {
		CoinGeckoBaseURL     string `yaml:"coingecko_base_url"`
		CoinMarketCapBaseURL string `yaml:"coinmarketcap_base_url"`
		CoinMarketCapAPIKey  string `yaml:"coinmarketcap_api_key"`
	} `yaml:"providers"`
	Data struct {
		UserEntriesFile string `yaml:"user_entries_file"`
		AccountsFile    string `yaml:"accounts_file"`
		HistoryCSV      string `yaml:"history_csv"`
		SQLitePath      string `yaml:"sqlite_path"`
	} `yaml:"data"`
	Auth struct {
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `yaml:"admin_password"`
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLMin   int    `yaml:"token_ttl_minutes"`
	} `yaml:"auth"`
	Snapshot struct {
		Cron  string `yaml:"cron"`
		Limit int    `yaml:"limit"`
	} `yaml:"snapshot"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Providers.CoinGeckoBaseURL = v
	}
	if v := os.Getenv("COINMARKETCAP_BASE_URL"); v != "" {
		cfg.Providers.CoinMarketCapBaseURL = v
	}
	if v := os.Getenv("COINMARKETCAP_API_KEY"); v != "" {
		cfg.Providers.CoinMarketCapAPIKey = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Auth.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Snapshot.Cron = v
	}
	if v := os.Getenv("SNAPSHOT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Snapshot.Limit = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Providers.CoinGeckoBaseURL == "" {
		cfg.Providers.CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Providers.CoinMarketCapBaseURL == "" {
		cfg.Providers.CoinMarketCapBaseURL = "https://pro-api.coinmarketcap.com/v1"
	}
	if cfg.Data.UserEntriesFile == "" {
		cfg.Data.UserEntriesFile = "data/user_added_data.json"
	}
	if cfg.Data.AccountsFile == "" {
		cfg.Data.AccountsFile = "data/accounts.json"
	}
	if cfg.Data.HistoryCSV == "" {
		cfg.Data.HistoryCSV = "data/crypto_history.csv"
	}
	if cfg.Auth.AdminEmail == "" {
		cfg.Auth.AdminEmail = "admin@gmail.com"
	}
	if cfg.Auth.TokenTTLMin == 0 {
		cfg.Auth.TokenTTLMin = 60
	}
	if cfg.Snapshot.Limit == 0 {
		cfg.Snapshot.Limit = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("auth.admin_email is required")
	}
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("auth.admin_password is required")
	}
	if c.Snapshot.Limit < 0 {
		return fmt.Errorf("snapshot.limit must not be negative")
	}
	return nil
}
