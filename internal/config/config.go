package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete deskbridge configuration
type Config struct {
	Transport TransportConfig `mapstructure:"transport"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TransportConfig controls the websocket channel to the host shell
type TransportConfig struct {
	// URL is the websocket endpoint the client dials
	URL string `mapstructure:"url"`
	// Origin is sent in the Origin header when dialing. Hosts that check
	// origins reject connections without it
	Origin string `mapstructure:"origin"`
	// RedialWaitMs is how long to wait before redialing after a dropped
	// connection (in milliseconds)
	RedialWaitMs int `mapstructure:"redial_wait_ms"`
}

// BridgeConfig controls command dispatch and request correlation
type BridgeConfig struct {
	// ResponseTimeoutMs bounds how long a host request may stay unanswered
	// before the bridge reports a timeout (0 = wait forever)
	ResponseTimeoutMs int `mapstructure:"response_timeout_ms"`
	// RequestIDs adds a generated request id to each host request as a
	// second correlation dimension (default: false)
	RequestIDs bool `mapstructure:"request_ids"`
}

// MonitorConfig controls the signal-traffic monitor endpoint
type MonitorConfig struct {
	// Bind is the address the monitor listens on
	Bind string `mapstructure:"bind"`
	// Port is the monitor's listen port
	Port int `mapstructure:"port"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// RedialWait returns the redial backoff as a time.Duration
func (t *TransportConfig) RedialWait() time.Duration {
	return time.Duration(t.RedialWaitMs) * time.Millisecond
}

// ResponseTimeout returns the response timeout as a time.Duration (0 means disabled)
func (b *BridgeConfig) ResponseTimeout() time.Duration {
	return time.Duration(b.ResponseTimeoutMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Transport: TransportConfig{
			URL:          "ws://127.0.0.1:8173/v1/channel",
			Origin:       "",
			RedialWaitMs: 2000,
		},
		Bridge: BridgeConfig{
			ResponseTimeoutMs: 0, // Wait forever by default
			RequestIDs:        false,
		},
		Monitor: MonitorConfig{
			Bind: "127.0.0.1",
			Port: 8173,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Transport defaults
	viper.SetDefault("transport.url", defaults.Transport.URL)
	viper.SetDefault("transport.origin", defaults.Transport.Origin)
	viper.SetDefault("transport.redial_wait_ms", defaults.Transport.RedialWaitMs)

	// Bridge defaults
	viper.SetDefault("bridge.response_timeout_ms", defaults.Bridge.ResponseTimeoutMs)
	viper.SetDefault("bridge.request_ids", defaults.Bridge.RequestIDs)

	// Monitor defaults
	viper.SetDefault("monitor.bind", defaults.Monitor.Bind)
	viper.SetDefault("monitor.port", defaults.Monitor.Port)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskbridge")
	}
	// Fall back to ~/.config/deskbridge
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deskbridge"
	}
	return filepath.Join(home, ".config", "deskbridge")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
