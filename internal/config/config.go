package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// SettingsEnvVar names an optional settings file (dotenv format) loaded
// before the process environment. Values already present in the environment
// win, so the file acts as a base layer of overrides.
const SettingsEnvVar = "POMODORO_SETTINGS"

type Config struct {
	AppEnv       string `env:"APP_ENV" default:"development"`
	RecorderPort string `env:"RECORDER_PORT" default:"8080"`
	StatsPort    string `env:"STATS_PORT" default:"8081"`
	DatabaseURL  string `env:"DATABASE_URL"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"168h"` // 7 days

	// MinPomodoroTime is the minimum duration in seconds a closed entry
	// must strictly exceed before it counts toward any aggregate.
	MinPomodoroTime int64 `env:"MIN_POMODORO_TIME" default:"900"`

	// Timezone is the IANA zone used for all midnight arithmetic on the
	// stats side. "Local" keeps the host's wall clock, which makes results
	// host-dependent.
	Timezone string `env:"TIMEZONE" default:"Local"`

	// StatsTypeFilter toggles type_id filtering in pomodoro counts. On by
	// default; switching it off counts every qualifying entry regardless
	// of its type.
	StatsTypeFilter bool `env:"STATS_TYPE_FILTER" default:"true"`

	// ProtectFeed gates the recorder's global entry feed behind the same
	// session check as the write endpoints. Off by default to match the
	// observed behavior of an open feed.
	ProtectFeed bool `env:"PROTECT_FEED" default:"false"`

	LoginRatePerSecond float64 `env:"LOGIN_RATE" default:"5"`
	LoginBurst         int     `env:"LOGIN_BURST" default:"10"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if path := os.Getenv(SettingsEnvVar); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.MinPomodoroTime < 0 {
		return fmt.Errorf("MIN_POMODORO_TIME must not be negative, got %d", cfg.MinPomodoroTime)
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("TIMEZONE must be a valid IANA zone name: %w", err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
