package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the host-layer wiring: which store backs the service,
// where it listens, and which location defines a calendar day. The core
// computation takes no configuration at all.
type Config struct {
	Store    string `toml:"store"`     // "mysql" or "local"
	HTTPAddr string `toml:"http_addr"` // e.g. :8080
	Timezone string `toml:"timezone"`  // local calendar days, e.g. America/Denver
	MySQL    struct {
		DSN string `toml:"dsn"` // user:pass@tcp(host:3306)/db?parseTime=true&multiStatements=true
	} `toml:"mysql"`
	Local struct {
		Path string `toml:"path"` // buntdb file, ":memory:" for ephemeral
	} `toml:"local"`
}

func defaults() Config {
	var cfg Config
	cfg.Store = "local"
	cfg.HTTPAddr = ":8080"
	cfg.Timezone = "Local"
	cfg.Local.Path = "shopclock.db"
	return cfg
}

// Load reads the TOML file at path (skipped when path is empty or the
// file does not exist), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Store != "mysql" && cfg.Store != "local" {
		return cfg, fmt.Errorf("store must be \"mysql\" or \"local\", got %q", cfg.Store)
	}
	if cfg.Store == "mysql" && cfg.MySQL.DSN == "" {
		return cfg, fmt.Errorf("mysql store selected but no DSN configured (SHOPCLOCK_MYSQL_DSN)")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHOPCLOCK_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("SHOPCLOCK_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SHOPCLOCK_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("SHOPCLOCK_MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}
	if v := os.Getenv("SHOPCLOCK_DB_PATH"); v != "" {
		cfg.Local.Path = v
	}
}
