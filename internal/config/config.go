// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort           = 8080
	defaultServerHost           = "0.0.0.0"
	defaultReadTimeout          = 30 * time.Second
	defaultWriteTimeout         = 30 * time.Second
	defaultLogLevel             = "info"
	defaultLogPretty            = false
	defaultEngineTickResolution = 33
	defaultEngineTickImmediate  = false
	defaultEngineFrameInterval  = 16 * time.Millisecond
	defaultEnginePlaybackRate   = 1.0
	envPrefix                   = "KINETOPHONE"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Engine  EngineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// EngineConfig holds playback engine configuration
type EngineConfig struct {
	// TickResolution is the minimum clock advance in milliseconds between two
	// timeupdate batches
	TickResolution int64
	// TickImmediately resolves as soon as playback starts
	TickImmediately bool
	// FrameInterval is the real-time clock callback period
	FrameInterval time.Duration
	// PlaybackRate is the initial clock rate multiplier
	PlaybackRate float64
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the given config file instead of
// searching the default locations. An empty path searches as Load does.
func LoadFrom(path string) (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/kinetophone")
	}

	// Environment variable settings
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	// Logging defaults
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	// Engine defaults
	v.SetDefault("engine.tickresolution", defaultEngineTickResolution)
	v.SetDefault("engine.tickimmediately", defaultEngineTickImmediate)
	v.SetDefault("engine.frameinterval", defaultEngineFrameInterval)
	v.SetDefault("engine.playbackrate", defaultEnginePlaybackRate)
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	// Validate server port
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	// Validate timeout durations
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	// Validate engine settings
	if c.Engine.TickResolution < 1 {
		return fmt.Errorf("invalid tick resolution: %d (must be >= 1)", c.Engine.TickResolution)
	}
	if c.Engine.FrameInterval <= 0 {
		return fmt.Errorf("invalid frame interval: %v (must be > 0)", c.Engine.FrameInterval)
	}
	if c.Engine.PlaybackRate <= 0 {
		return fmt.Errorf("invalid playback rate: %v (must be > 0)", c.Engine.PlaybackRate)
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
