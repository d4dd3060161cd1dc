package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":              "127.0.0.1:9000",
		"database_dsn":                    "postgres://db",
		"secret_key":                      "my_secret_key",
		"access_token_validity_duration":  "15m",
		"refresh_token_validity_duration": "48h",
		"password_hash_cost":              12,
		"rate_limit_requests":             100,
		"rate_limit_window":               "30s",
		"redis_addr":                      "redis:6379",
		"log_backend":                     "zap",
		"log_level":                       "debug",
		"read_timeout":                    "5s",
		"write_timeout":                   "6s",
		"shutdown_timeout":                "7s",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "127.0.0.1:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 12, cfg.PasswordHashCost)
		assert.Equal(t, 100, cfg.RateLimitRequests)
		assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, "zap", cfg.LogBackend)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 6*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 7*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("no config flag leaves values alone", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, want, *cfg)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"secret_key": "k"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "k", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
	})

	t.Run("broken json", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))

		err := parseJson(&Config{}, []string{"-c", broken})
		assert.ErrorContains(t, err, "parse config file")
	})
}
