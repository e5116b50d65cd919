// Package config loads barsvg settings from files, environment variables
// and defaults.
//
// Settings are resolved in this order, later sources winning:
//
//  1. Built-in defaults ([DefaultConfig])
//  2. A config file named barsvg.{yaml,toml,json}
//  3. Environment variables prefixed with BARSVG_ (server.port is BARSVG_SERVER_PORT)
//  4. Command-line flags, applied by the CLI
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// Config is the complete barsvg configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Render defaults applied to every barcode without an explicit value.
	Render RenderConfig `mapstructure:"render" yaml:"render" json:"render"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// RenderConfig holds default render props and caption settings.
type RenderConfig struct {
	Format     string  `mapstructure:"format" yaml:"format" json:"format"`
	Width      float64 `mapstructure:"width" yaml:"width" json:"width"`
	MaxWidth   float64 `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	Height     float64 `mapstructure:"height" yaml:"height" json:"height"`
	LineColor  string  `mapstructure:"line_color" yaml:"line_color" json:"line_color"`
	Background string  `mapstructure:"background" yaml:"background" json:"background"`
	FontSize   float64 `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	FontFamily string  `mapstructure:"font_family" yaml:"font_family" json:"font_family"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host               string `mapstructure:"host" yaml:"host" json:"host"`
	Port               int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin         string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec" json:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec" json:"write_timeout_sec"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec"`
	MaxValueLength     int    `mapstructure:"max_value_length" yaml:"max_value_length" json:"max_value_length"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Render: RenderConfig{
			Format:     string(barcode.DefaultFormat),
			Width:      barcode.DefaultUnitWidth,
			MaxWidth:   0,
			Height:     barcode.DefaultHeight,
			LineColor:  barcode.DefaultLineColor,
			Background: barcode.DefaultBackground,
			FontSize:   20,
			FontFamily: "monospace",
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSOrigin:         "*",
			ReadTimeoutSec:     10,
			WriteTimeoutSec:    30,
			ShutdownTimeoutSec: 10,
			MaxValueLength:     256,
		},
	}
}

// Props converts the render defaults into barcode props.
func (r RenderConfig) Props() barcode.Props {
	return barcode.Props{
		Format:     symbology.ID(r.Format),
		UnitWidth:  r.Width,
		MaxWidth:   r.MaxWidth,
		Height:     r.Height,
		LineColor:  r.LineColor,
		Background: r.Background,
	}
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// ShutdownTimeout returns the graceful shutdown timeout.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Validate checks the render defaults.
func (r RenderConfig) Validate() error {
	if !symbology.Builtin().Has(symbology.ID(r.Format)) {
		return fmt.Errorf("invalid render.format: %q", r.Format)
	}
	if r.Width <= 0 {
		return fmt.Errorf("render.width must be positive, got %v", r.Width)
	}
	if r.Height <= 0 {
		return fmt.Errorf("render.height must be positive, got %v", r.Height)
	}
	if r.MaxWidth < 0 {
		return fmt.Errorf("render.max_width cannot be negative, got %v", r.MaxWidth)
	}
	if r.FontSize <= 0 {
		return fmt.Errorf("render.font_size must be positive, got %v", r.FontSize)
	}
	if err := errors.ValidateColor(r.LineColor); err != nil {
		return fmt.Errorf("render.line_color: %w", err)
	}
	if err := errors.ValidateColor(r.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	return nil
}

// Validate checks the server settings.
func (s ServerConfig) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d (must be 1-65535)", s.Port)
	}
	if s.ReadTimeoutSec <= 0 || s.WriteTimeoutSec <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if s.ShutdownTimeoutSec < 0 {
		return fmt.Errorf("server.shutdown_timeout_sec cannot be negative")
	}
	if s.MaxValueLength <= 0 {
		return fmt.Errorf("server.max_value_length must be positive")
	}
	return nil
}
