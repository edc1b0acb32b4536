// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel slog.Level

	// Contentful space and credentials. An empty space id or access token
	// leaves the site running on fallback content only.
	SpaceID         string
	Environment     string
	AccessToken     string
	ManagementToken string
	DeliveryURL     string
	ManagementURL   string

	// CMS client behavior
	CMSTimeout    time.Duration
	CMSStrictAuth bool
	CMSCacheTTL   time.Duration // 0 disables the Valkey envelope cache

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Form submission rate limiting, per client IP
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists. Variables already
// set in the environment win over the file. Returns an error for values
// that cannot be parsed.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		SpaceID:         os.Getenv("CONTENTFUL_SPACE_ID"),
		Environment:     envOrDefault("CONTENTFUL_ENVIRONMENT", "master"),
		AccessToken:     os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
		ManagementToken: os.Getenv("CONTENTFUL_MANAGEMENT_TOKEN"),
		DeliveryURL:     envOrDefault("CONTENTFUL_DELIVERY_URL", "https://cdn.contentful.com"),
		ManagementURL:   envOrDefault("CONTENTFUL_MANAGEMENT_URL", "https://api.contentful.com"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.LogLevel, err = levelEnv("LOG_LEVEL", defaultLevel(cfg.Env)); err != nil {
		return nil, err
	}
	if cfg.CMSTimeout, err = durationEnv("CMS_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CMSStrictAuth, err = boolEnv("CMS_STRICT_AUTH", false); err != nil {
		return nil, err
	}
	if cfg.CMSCacheTTL, err = durationEnv("CMS_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = intEnv("RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = durationEnv("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.CMSTimeout <= 0 {
		return nil, fmt.Errorf("CMS_TIMEOUT must be positive, got %s", cfg.CMSTimeout)
	}
	if cfg.CMSCacheTTL < 0 {
		return nil, fmt.Errorf("CMS_CACHE_TTL must not be negative, got %s", cfg.CMSCacheTTL)
	}
	if cfg.RateLimit < 1 || cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_WINDOW must be positive")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CMSConfigured reports whether delivery credentials are present.
func (c *Config) CMSConfigured() bool {
	return c.SpaceID != "" && c.AccessToken != ""
}

// CacheEnabled reports whether CMS responses should be cached in Valkey.
func (c *Config) CacheEnabled() bool {
	return c.CMSCacheTTL > 0
}

func defaultLevel(env string) slog.Level {
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

func levelEnv(key string, fallback slog.Level) (slog.Level, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return 0, fmt.Errorf("%s: invalid level %q: %w", key, v, err)
	}
	return level, nil
}
