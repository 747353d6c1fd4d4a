// Package config loads the piechart service configuration.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. PIECHART_SERVER_ADDR.
const EnvPrefix = "PIECHART"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Cache   CacheConfig   `mapstructure:"cache"   yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ChartConfig holds canvas defaults and limits.
type ChartConfig struct {
	DefaultWidth  int      `mapstructure:"default_width"  yaml:"default_width"`
	DefaultHeight int      `mapstructure:"default_height" yaml:"default_height"`
	MaxWidth      int      `mapstructure:"max_width"      yaml:"max_width"`
	MaxHeight     int      `mapstructure:"max_height"     yaml:"max_height"`
	Palette       []string `mapstructure:"palette"        yaml:"palette"` // hex colours; empty means built-in
}

// CacheConfig holds the rendered chart cache settings.
type CacheConfig struct {
	Size int `mapstructure:"size" yaml:"size"` // entries; 0 disables caching
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.piechart/config.yaml
//  3. /etc/piechart/config.yaml
//
// Environment variables override config file values.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".piechart"))
	}
	v.AddConfigPath("/etc/piechart")

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("chart.default_width", 340)
	v.SetDefault("chart.default_height", 300)
	v.SetDefault("chart.max_width", 4096)
	v.SetDefault("chart.max_height", 4096)
	v.SetDefault("chart.palette", []string{})

	v.SetDefault("cache.size", 256)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Chart.DefaultWidth < 1 || c.Chart.DefaultHeight < 1 {
		return fmt.Errorf("config: chart default size must be positive, got %dx%d",
			c.Chart.DefaultWidth, c.Chart.DefaultHeight)
	}
	if c.Chart.MaxWidth < 0 || c.Chart.MaxHeight < 0 {
		return fmt.Errorf("config: chart max size must not be negative")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("config: cache size must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}
