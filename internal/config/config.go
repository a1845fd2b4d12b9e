// Package config gathers settings for the spotify command. Values come from,
// in order of precedence: command-line flags, environment variables, an
// optional .env file, and built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"Spotify-Wrapper-Go/pkg/query"
)

// Config holds the command settings.
type Config struct {
	// ClientID and ClientSecret enable the client credentials flow. Both
	// empty means requests go out unauthenticated.
	ClientID     string
	ClientSecret string
	// APIBase overrides query.BaseURL.
	APIBase string
	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout  time.Duration
	LogLevel logrus.Level
	// Metrics dumps request metrics in Prometheus text format on exit.
	Metrics bool
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load parses args with defaults taken from getenv and returns the config
// along with the remaining positional arguments.
func Load(args []string, getenv func(string) string) (*Config, []string, error) {
	fs := flag.NewFlagSet("spotify", flag.ContinueOnError)
	clientID := fs.String("client-id", getenv("SPOTIFY_CLIENT_ID"), "Spotify application client ID")
	clientSecret := fs.String("client-secret", getenv("SPOTIFY_CLIENT_SECRET"), "Spotify application client secret")
	apiBase := fs.String("api-base", withDefault(getenv("SPOTIFY_API_BASE"), query.BaseURL), "catalog API origin")
	timeout := fs.String("timeout", getenv("SPOTIFY_TIMEOUT"), "per-request timeout, e.g. 10s (default none)")
	logLevel := fs.String("log-level", withDefault(getenv("LOG_LEVEL"), "info"), "log level (debug, info, warn, error)")
	metrics := fs.Bool("metrics", envBool(getenv("SPOTIFY_METRICS")), "print request metrics to stderr on exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := &Config{
		ClientID:     *clientID,
		ClientSecret: *clientSecret,
		APIBase:      *apiBase,
		Metrics:      *metrics,
	}
	if (cfg.ClientID == "") != (cfg.ClientSecret == "") {
		return nil, nil, errors.New("client id and client secret must be set together")
	}
	if *timeout != "" {
		d, err := time.ParseDuration(*timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid timeout %q: %w", *timeout, err)
		}
		cfg.Timeout = d
	}
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return nil, nil, err
	}
	cfg.LogLevel = lvl
	return cfg, fs.Args(), nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func envBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
