package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "90s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	PasswordHashCost             int            `json:"password_hash_cost"`
	RateLimitRequests            int            `json:"rate_limit_requests"`
	RateLimitWindow              timex.Duration `json:"rate_limit_window"`
	RedisAddr                    string         `json:"redis_addr"`
	LogBackend                   string         `json:"log_backend"`
	LogLevel                     string         `json:"log_level"`
	ReadTimeout                  timex.Duration `json:"read_timeout"`
	WriteTimeout                 timex.Duration `json:"write_timeout"`
	ShutdownTimeout              timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)

	setInt(&config.PasswordHashCost, c.PasswordHashCost)
	setInt(&config.RateLimitRequests, c.RateLimitRequests)

	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setDuration(&config.RateLimitWindow, c.RateLimitWindow)
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
