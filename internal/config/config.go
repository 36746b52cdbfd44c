package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	AllowedOrigin     string        `mapstructure:"allowed_origin" yaml:"allowed_origin"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Execution collaborator (Piston-compatible API).
	ExecURL     string        `mapstructure:"exec_url" yaml:"exec_url"`
	ExecTimeout time.Duration `mapstructure:"exec_timeout" yaml:"exec_timeout"`

	// Room hardening knobs.
	MaxStrokes      int `mapstructure:"max_strokes" yaml:"max_strokes"`
	WSMsgsPerMinute int `mapstructure:"ws_msgs_per_minute" yaml:"ws_msgs_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		AllowedOrigin:     "http://localhost:3000",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		ExecURL:           "https://emkc.org/api/v2/piston/execute",
		ExecTimeout:       15 * time.Second,
		MaxStrokes:        10000,
		WSMsgsPerMinute:   600,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.AllowedOrigin != "" {
		c.AllowedOrigin = other.AllowedOrigin
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
	if other.ExecURL != "" {
		c.ExecURL = other.ExecURL
	}
	if other.ExecTimeout != 0 {
		c.ExecTimeout = other.ExecTimeout
	}
	if other.MaxStrokes != 0 {
		c.MaxStrokes = other.MaxStrokes
	}
	if other.WSMsgsPerMinute != 0 {
		c.WSMsgsPerMinute = other.WSMsgsPerMinute
	}
}
