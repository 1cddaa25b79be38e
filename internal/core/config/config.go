package config

import (
	"time"

	redisclient "github.com/movi008/rehabit/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Retry        RetryConfig        `yaml:"retry"`
	Redis        redisclient.Config `yaml:"redis"`
	Capabilities Capabilities       `yaml:"capabilities"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// RetryConfig holds the default retry policy applied to pipeline runs.
// MaxAttempts counts additional attempts after the first.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

// Capabilities holds per-capability provider settings.
type Capabilities struct {
	Script CapabilityConfig `yaml:"script"`
	Image  CapabilityConfig `yaml:"image"`
	Voice  CapabilityConfig `yaml:"voice"`
	Video  CapabilityConfig `yaml:"video"`
}

// CapabilityConfig holds settings for one generation capability. Loaded once
// at startup and read-only afterwards. An empty credential is a valid,
// degraded state detected at call time, never at load time.
type CapabilityConfig struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	Enabled    bool          `yaml:"enabled"`
	Credential string        `yaml:"credential"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"` // 0 = no timeout beyond the transport's own

	// Capability-specific knobs.
	ImageCount   int           `yaml:"image_count"`   // image: images per request
	VoiceID      string        `yaml:"voice_id"`      // voice: provider voice identifier
	PollInterval time.Duration `yaml:"poll_interval"` // video: render status poll interval
}
