package config

import "fmt"

// ConfigError is a fatal, user-facing configuration failure. It aborts the
// in-progress load, reload or persist operation; on initial load the process
// is expected to refuse to start.
type ConfigError struct {
	Message string
	Err     error
}

// Error returns the diagnostic text shown to the operator.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

// newConfigError builds a ConfigError from a printf-style message.
func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// wrapConfigError builds a ConfigError keeping err as the unwrappable cause.
func wrapConfigError(err error, format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...), Err: err}
}
