package config

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CREASE_"

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New(ctx))
//  2. YAML file if CREASE_CONFIG is set
//  3. env (prefix CREASE_), after merging a .env file into the process
//     environment (CREASE_ENV_FILE, default ./.env; missing is fine)
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", path), ErrLoadConfig)
		}
	}

	// CREASE_MIN_BALLS -> min_balls; underscores are kept to match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read env"), ErrLoadConfig)
	}

	cfg := *New(ctx)
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode config"), ErrLoadConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv merges a .env file into the environment without overriding
// variables that are already set.
func loadDotEnv() error {
	path := os.Getenv(envPrefix + "ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Mark(errors.Wrapf(err, "stat %s", path), ErrLoadConfig)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Mark(errors.Wrapf(err, "load %s", path), ErrLoadConfig)
	}
	return nil
}

// Validate checks field combinations.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidConfig, format, args...)
	}
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.MinBalls < 1:
		return invalid("min_balls must be at least 1, got %d", c.MinBalls)
	case c.RateLimitRPS < 0:
		return invalid("rate_limit_rps must not be negative")
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return invalid("rate_limit_burst must be at least 1 when rate limiting is enabled")
	case c.MaxLookupLimit < 1:
		return invalid("max_lookup_limit must be at least 1")
	}

	switch c.Source {
	case SourceCSV:
		if c.DataDir == "" {
			return invalid("data_dir must be set for the csv source")
		}
		if c.Pushdown {
			return invalid("pushdown requires the mysql source")
		}
	case SourceMySQL:
		if c.MySQLDSN == "" {
			return invalid("mysql_dsn must be set for the mysql source")
		}
	default:
		return invalid("unknown source %q", c.Source)
	}
	return nil
}
