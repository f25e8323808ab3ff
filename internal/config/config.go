// Package config defines service configuration and its defaults.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and CREASE_* env vars.
package config

import "context"

// Dataset source kinds.
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Source selects where the dataset is read from: csv or mysql.
	Source string `koanf:"source"`

	// DataDir holds matches.csv, teams.csv, players.csv and deliveries.csv.
	DataDir string `koanf:"data_dir"`

	// MySQLDSN is the gorm/mysql DSN used when Source is mysql.
	MySQLDSN string `koanf:"mysql_dsn"`

	// Pushdown runs reports as SQL in MySQL instead of in memory.
	Pushdown bool `koanf:"pushdown"`

	// DefaultSeason is used by seasonal reports when a request omits it.
	DefaultSeason int `koanf:"default_season"`

	// MinBalls is the default strike rate qualification.
	MinBalls int `koanf:"min_balls"`

	// Team1OnlySeasons credits seasons from team1 appearances only.
	Team1OnlySeasons bool `koanf:"team1_only_seasons"`

	// RateLimitRPS and RateLimitBurst bound API traffic. Zero RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// MaxLookupLimit caps GET /players and /teams ?limit.
	MaxLookupLimit int `koanf:"max_lookup_limit"`
}

// New creates a Config with defaults. The context is reserved for
// loaders that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		Source:         SourceCSV,
		DataDir:        "data",
		DefaultSeason:  2021,
		MinBalls:       100,
		RateLimitRPS:   50,
		RateLimitBurst: 100,
		MaxLookupLimit: 50,
	}
}
