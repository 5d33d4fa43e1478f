package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const Prefix = "STAFFROTA_"

type Config struct {
	TickSize       time.Duration `env:"TICK_SIZE" envDefault:"30m"`
	RotationCutoff time.Duration `env:"ROTATION_CUTOFF" envDefault:"1h30m"`
	Log            struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"text"`
	} `envPrefix:"LOG_"`
}

// LoadConfig reads the configuration from STAFFROTA_ prefixed environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// The first error is enough to point at the offending variable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if cfg.TickSize <= 0 {
		return nil, fmt.Errorf("tick size must be positive: %v", cfg.TickSize)
	}
	if cfg.RotationCutoff < 0 {
		return nil, fmt.Errorf("rotation cutoff cannot be negative: %v", cfg.RotationCutoff)
	}
	return cfg, nil
}

// Logger builds the structured logger described by the configuration
func (cfg *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	options := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Log.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Log.Format)
	}
}
