package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Spotify-Wrapper-Go/pkg/query"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, rest, err := Load([]string{"album", "x"}, env(nil))
	require.NoError(t, err)
	assert.Equal(t, query.BaseURL, cfg.APIBase)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.ClientID)
	assert.Equal(t, []string{"album", "x"}, rest)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	e := env(map[string]string{
		"SPOTIFY_CLIENT_ID":     "env-id",
		"SPOTIFY_CLIENT_SECRET": "env-secret",
		"LOG_LEVEL":             "warn",
		"SPOTIFY_TIMEOUT":       "5s",
		"SPOTIFY_METRICS":       "true",
	})
	cfg, _, err := Load([]string{"-client-id", "flag-id", "-log-level", "debug"}, e)
	require.NoError(t, err)
	assert.Equal(t, "flag-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Metrics)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := Load(nil, env(map[string]string{"SPOTIFY_CLIENT_ID": "only-id"}))
	assert.Error(t, err)

	_, _, err = Load([]string{"-timeout", "soon"}, env(nil))
	assert.Error(t, err)

	_, _, err = Load([]string{"-log-level", "loud"}, env(nil))
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPOTIFY_WRAPPER_TEST_VAR=from-file\n"), 0o600))
	t.Setenv("SPOTIFY_WRAPPER_TEST_VAR", "")
	os.Unsetenv("SPOTIFY_WRAPPER_TEST_VAR")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("SPOTIFY_WRAPPER_TEST_VAR"))
}
