package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Host        string
	Port        int
	MetricsPort int    `toml:"metrics_port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// remote ledger (postgres); empty host means local-only mode
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis, used for identity tokens and rate limiting
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// local ledger
	SQLitePath string `toml:"sqlite_path"`
	// training
	DefaultRestSeconds int     `toml:"default_rest_seconds"`
	PlateIncrement     float64 `toml:"plate_increment"`
	// misc
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config for env,
// with defaults applied and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RemoteEnabled reports whether a remote ledger is configured.
func (c *Config) RemoteEnabled() bool {
	return c.PostgresHost != ""
}

func (c *Config) applyDefaults() {
	if c.DefaultRestSeconds == 0 {
		c.DefaultRestSeconds = 90
	}
	if c.PlateIncrement == 0 {
		c.PlateIncrement = 1.25
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "./data/liftlog.db"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
}

func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 {
		err = multierr.Append(err, errors.New("port must be positive"))
	}
	if c.MetricsPort < 0 {
		err = multierr.Append(err, errors.New("metrics port must not be negative"))
	}
	if c.DefaultRestSeconds < 0 {
		err = multierr.Append(err, errors.New("default rest seconds must not be negative"))
	}
	if c.PlateIncrement < 0 {
		err = multierr.Append(err, errors.New("plate increment must not be negative"))
	}
	if c.RemoteEnabled() && c.PostgresDBName == "" {
		err = multierr.Append(err, errors.New("postgres db name required when postgres host is set"))
	}
	return err
}
