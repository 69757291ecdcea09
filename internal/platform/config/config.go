package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	Log             Log
	Identifier      Identifier
}

// Log configures the structured logger.
type Log struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Identifier bounds the identifier endpoints.
type Identifier struct {
	// MaxInputBytes caps a single raw identifier value before sanitizing.
	MaxInputBytes int
	// BatchMax caps the number of values in one batch request.
	BatchMax int
}

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxInputBytes   = 64
	DefaultBatchMax        = 100
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values are reported rather than silently replaced.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Server{
		Addr: get("JORNADA_ADDR", DefaultAddr),
		Log: Log{
			Format: strings.ToLower(get("LOG_FORMAT", "json")),
		},
	}

	metricsEnabled, err := strconv.ParseBool(get("METRICS_ENABLED", "true"))
	if err != nil {
		return Server{}, fmt.Errorf("METRICS_ENABLED: %w", err)
	}
	cfg.MetricsEnabled = metricsEnabled

	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return Server{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.Log.Format)
	}
	if err := cfg.Log.Level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Server{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout.String()))
	if err != nil {
		return Server{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	if cfg.Identifier.MaxInputBytes, err = positiveInt(get("IDENTIFIER_MAX_INPUT", strconv.Itoa(DefaultMaxInputBytes))); err != nil {
		return Server{}, fmt.Errorf("IDENTIFIER_MAX_INPUT: %w", err)
	}
	if cfg.Identifier.BatchMax, err = positiveInt(get("IDENTIFIER_BATCH_MAX", strconv.Itoa(DefaultBatchMax))); err != nil {
		return Server{}, fmt.Errorf("IDENTIFIER_BATCH_MAX: %w", err)
	}

	return cfg, nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
