package config

import (
	"os"
	"time"
)

// Recognized environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Environment       string        `mapstructure:"environment" yaml:"environment"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3001",
		Environment:       EnvDevelopment,
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// ResolveOrigins fills AllowedOrigins when the config left it empty: a
// fixed localhost list in development, deployment host names from the
// environment in production. Origins are host[:port] patterns as checked
// by the websocket accept.
func (c *Config) ResolveOrigins() {
	if len(c.AllowedOrigins) > 0 {
		return
	}
	if c.Environment == EnvProduction {
		for _, key := range []string{"RELAYHUB_PUBLIC_HOST", "PUBLIC_URL"} {
			if v := os.Getenv(key); v != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, v)
			}
		}
		return
	}
	c.AllowedOrigins = []string{"localhost:3000", "127.0.0.1:3000"}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.Environment != "" {
		c.Environment = other.Environment
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
}
