package core

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing    = "ENV_FILE_MISSING"
	ErrCodeConfigFileMissing = "CONFIG_FILE_UNREADABLE"
	ErrCodeInvalidValue      = "INVALID_VALUE"
	ErrCodeUnsupportedLocale = "UNSUPPORTED_LOCALE"
	ErrCodeLogDirNotWritable = "LOG_DIR_NOT_WRITABLE"
	ErrCodeMissingConfig     = "MISSING_CONFIG"
)

// ErrEnvFileMissing returns an error for missing .env file
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Copy example.env to .env or rely on the built-in defaults",
	}
}

// ErrConfigFileUnreadable returns an error when the YAML overlay cannot be used.
func ErrConfigFileUnreadable(path string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigFileMissing,
		Message: fmt.Sprintf("Cannot read config file %s: %s", path, reason),
		Action:  "Fix the file or unset BOOKFORGE_CONFIG_FILE",
	}
}

// ErrInvalidValue returns an error for an out-of-range setting.
func ErrInvalidValue(varName, value, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("Invalid %s '%s': %s", varName, value, reason),
		Action:  fmt.Sprintf("Set %s to a valid value in your .env file", varName),
	}
}

// ErrUnsupportedLocale returns an error when the default locale has no provider.
func ErrUnsupportedLocale(code string, supported []string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnsupportedLocale,
		Message: fmt.Sprintf("Unsupported default locale: %s", code),
		Action:  fmt.Sprintf("Set BOOKFORGE_DEFAULT_LOCALE to one of %v", supported),
	}
}

// ErrLogDirNotWritable returns an error when the log file directory cannot be written.
func ErrLogDirNotWritable(dir string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeLogDirNotWritable,
		Message: fmt.Sprintf("Log directory %s is not writable: %s", dir, reason),
		Action:  "Set BOOKFORGE_LOG_FILE to a path in a writable directory",
	}
}

// ErrMissingConfig returns an error for missing required configuration
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// IsConfigError checks if an error is, or wraps, a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
