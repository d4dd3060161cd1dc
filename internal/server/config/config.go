// Package config handles configuration for the server component: defaults,
// a JSON file overlay, environment variables and command-line flags, applied
// in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Log backends accepted in LogBackend.
const (
	LogBackendSlog = "slog"
	LogBackendZap  = "zap"
)

// Config holds runtime settings for the taskkeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs. Empty means a random key per process.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - PasswordHashCost: bcrypt work factor.
//   - RateLimitRequests / RateLimitWindow: per-client request budget.
//   - RedisAddr: when set, rate-limit counters are kept in Redis.
//   - LogBackend / LogLevel: logger implementation and minimum level.
//   - ReadTimeout / WriteTimeout / ShutdownTimeout: HTTP server timings.
type Config struct {
	EndpointAddrHTTP             string        `env:"HTTP_ADDR"`
	DatabaseDSN                  string        `env:"DATABASE_DSN"`
	SecretKey                    string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"REFRESH_TOKEN_TTL"`
	PasswordHashCost             int           `env:"PASSWORD_HASH_COST"`
	RateLimitRequests            int           `env:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow              time.Duration `env:"RATE_LIMIT_WINDOW"`
	RedisAddr                    string        `env:"REDIS_ADDR"`
	LogBackend                   string        `env:"LOG_BACKEND"`
	LogLevel                     string        `env:"LOG_LEVEL"`
	ReadTimeout                  time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout                 time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout              time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults: in-memory
// storage and a per-process random secret.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.AccessTokenValidityDuration = time.Hour
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.PasswordHashCost = bcrypt.DefaultCost
	c.RateLimitRequests = 20
	c.RateLimitWindow = time.Minute
	c.RedisAddr = ""
	c.LogBackend = LogBackendSlog
	c.LogLevel = "info"
	c.ReadTimeout = 10 * time.Second
	c.WriteTimeout = 10 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.RefreshTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("refresh token validity must be positive"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("password hash cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RateLimitRequests <= 0 {
		errs = append(errs, errors.New("rate limit requests must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}
	if c.LogBackend != LogBackendSlog && c.LogBackend != LogBackendZap {
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, then the optional JSON file,
// then TASKKEEPER_* environment variables and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
