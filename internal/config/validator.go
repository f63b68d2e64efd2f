package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "transport.url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTransport()...)
	errors = append(errors, c.validateBridge()...)
	errors = append(errors, c.validateMonitor()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateTransport validates the TransportConfig
func (c *Config) validateTransport() []ValidationError {
	var errors []ValidationError

	if c.Transport.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "transport.url",
			Value:   c.Transport.URL,
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.Transport.URL); err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
		errors = append(errors, ValidationError{
			Field:   "transport.url",
			Value:   c.Transport.URL,
			Message: "must be a ws:// or wss:// url",
		})
	}

	if c.Transport.RedialWaitMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "transport.redial_wait_ms",
			Value:   c.Transport.RedialWaitMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateBridge validates the BridgeConfig
func (c *Config) validateBridge() []ValidationError {
	var errors []ValidationError

	if c.Bridge.ResponseTimeoutMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "bridge.response_timeout_ms",
			Value:   c.Bridge.ResponseTimeoutMs,
			Message: "must be non-negative (0 disables the timeout)",
		})
	}

	return errors
}

// validateMonitor validates the MonitorConfig
func (c *Config) validateMonitor() []ValidationError {
	var errors []ValidationError

	if c.Monitor.Bind == "" {
		errors = append(errors, ValidationError{
			Field:   "monitor.bind",
			Value:   c.Monitor.Bind,
			Message: "must not be empty",
		})
	}

	if c.Monitor.Port < 1 || c.Monitor.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "monitor.port",
			Value:   c.Monitor.Port,
			Message: "must be between 1 and 65535",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
