package core

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"bookforge/catalog"
)

// Config holds all configuration values
type Config struct {
	// Server Configuration
	Host string
	Port int

	// Catalog Configuration
	DefaultLocale  string
	PageSize       int // Books per request when count is omitted
	MaxPageSize    int // Upper clamp for count
	MaxExportPages int // Upper clamp for CSV export pages

	// Cover Configuration
	CoverWidth  int
	CoverHeight int

	// Logging Configuration
	LogFile  string
	LogLevel string
	DevMode  bool

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// ConfigFile is the YAML overlay that was applied, empty when none.
	ConfigFile string
}

// fileConfig mirrors Config for the optional YAML overlay. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	Host                   *string `yaml:"host"`
	Port                   *int    `yaml:"port"`
	DefaultLocale          *string `yaml:"default_locale"`
	PageSize               *int    `yaml:"page_size"`
	MaxPageSize            *int    `yaml:"max_page_size"`
	MaxExportPages         *int    `yaml:"max_export_pages"`
	CoverWidth             *int    `yaml:"cover_width"`
	CoverHeight            *int    `yaml:"cover_height"`
	LogFile                *string `yaml:"log_file"`
	LogLevel               *string `yaml:"log_level"`
	DevMode                *bool   `yaml:"dev_mode"`
	ReadTimeoutSeconds     *int    `yaml:"read_timeout"`
	WriteTimeoutSeconds    *int    `yaml:"write_timeout"`
	ShutdownTimeoutSeconds *int    `yaml:"shutdown_timeout"`
}

// Default configuration values.
const (
	DefaultHost            = "localhost"
	DefaultPort            = 3000
	DefaultLocale          = "en-US"
	DefaultPageSize        = 20
	DefaultMaxPageSize     = 100
	DefaultMaxExportPages  = 50
	DefaultCoverWidth      = 120
	DefaultCoverHeight     = 180
	DefaultLogFile         = "bookforge.log"
	DefaultLogLevel        = "info"
	DefaultReadTimeoutSec  = 30
	DefaultWriteTimeoutSec = 30
	DefaultShutdownSec     = 15
)

// DefaultConfig returns the built-in configuration before any file or
// environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		DefaultLocale:   DefaultLocale,
		PageSize:        DefaultPageSize,
		MaxPageSize:     DefaultMaxPageSize,
		MaxExportPages:  DefaultMaxExportPages,
		CoverWidth:      DefaultCoverWidth,
		CoverHeight:     DefaultCoverHeight,
		LogFile:         DefaultLogFile,
		LogLevel:        DefaultLogLevel,
		ReadTimeout:     DefaultReadTimeoutSec * time.Second,
		WriteTimeout:    DefaultWriteTimeoutSec * time.Second,
		ShutdownTimeout: DefaultShutdownSec * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by BOOKFORGE_CONFIG_FILE, and environment variables, in that order.
// Environment variables win over the file.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("BOOKFORGE_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrConfigFileUnreadable(path, err.Error())
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return ErrConfigFileUnreadable(path, err.Error())
	}

	setString(&c.Host, fc.Host)
	setInt(&c.Port, fc.Port)
	setString(&c.DefaultLocale, fc.DefaultLocale)
	setInt(&c.PageSize, fc.PageSize)
	setInt(&c.MaxPageSize, fc.MaxPageSize)
	setInt(&c.MaxExportPages, fc.MaxExportPages)
	setInt(&c.CoverWidth, fc.CoverWidth)
	setInt(&c.CoverHeight, fc.CoverHeight)
	setString(&c.LogFile, fc.LogFile)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.DevMode != nil {
		c.DevMode = *fc.DevMode
	}
	setSeconds(&c.ReadTimeout, fc.ReadTimeoutSeconds)
	setSeconds(&c.WriteTimeout, fc.WriteTimeoutSeconds)
	setSeconds(&c.ShutdownTimeout, fc.ShutdownTimeoutSeconds)
	return nil
}

func (c *Config) applyEnv() {
	c.Host = GetEnvOrDefault("BOOKFORGE_HOST", c.Host)

	// PORT is honoured for platform compatibility; BOOKFORGE_PORT takes precedence.
	c.Port = ParseIntEnv("PORT", c.Port)
	c.Port = ParseIntEnv("BOOKFORGE_PORT", c.Port)

	c.DefaultLocale = GetEnvOrDefault("BOOKFORGE_DEFAULT_LOCALE", c.DefaultLocale)
	c.PageSize = ParseIntEnv("BOOKFORGE_PAGE_SIZE", c.PageSize)
	c.MaxPageSize = ParseIntEnv("BOOKFORGE_MAX_PAGE_SIZE", c.MaxPageSize)
	c.MaxExportPages = ParseIntEnv("BOOKFORGE_MAX_EXPORT_PAGES", c.MaxExportPages)
	c.CoverWidth = ParseIntEnv("BOOKFORGE_COVER_WIDTH", c.CoverWidth)
	c.CoverHeight = ParseIntEnv("BOOKFORGE_COVER_HEIGHT", c.CoverHeight)

	c.LogFile = GetEnvOrDefault("BOOKFORGE_LOG_FILE", c.LogFile)
	c.DevMode = ParseBoolEnv("DEV_MODE", c.DevMode)
	level := c.LogLevel
	if c.DevMode && os.Getenv("BOOKFORGE_LOG_LEVEL") == "" && level == DefaultLogLevel {
		level = "debug"
	}
	c.LogLevel = GetEnvOrDefault("BOOKFORGE_LOG_LEVEL", level)

	c.ReadTimeout = ParseDurationEnv("BOOKFORGE_READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = ParseDurationEnv("BOOKFORGE_WRITE_TIMEOUT", c.WriteTimeout)
	c.ShutdownTimeout = ParseDurationEnv("BOOKFORGE_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

// Validate checks value ranges. Locale membership is checked by the
// startup validation suite, which knows the registry.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidValue("BOOKFORGE_PORT", strconv.Itoa(c.Port), "must be between 1 and 65535")
	}
	if c.MaxPageSize < 1 || c.MaxPageSize > catalog.MaxPageSize {
		return ErrInvalidValue("BOOKFORGE_MAX_PAGE_SIZE", strconv.Itoa(c.MaxPageSize),
			fmt.Sprintf("must be between 1 and %d", catalog.MaxPageSize))
	}
	if c.PageSize < 1 || c.PageSize > c.MaxPageSize {
		return ErrInvalidValue("BOOKFORGE_PAGE_SIZE", strconv.Itoa(c.PageSize),
			fmt.Sprintf("must be between 1 and %d", c.MaxPageSize))
	}
	if c.MaxExportPages < 1 {
		return ErrInvalidValue("BOOKFORGE_MAX_EXPORT_PAGES", strconv.Itoa(c.MaxExportPages), "must be at least 1")
	}
	if c.CoverWidth < 1 {
		return ErrInvalidValue("BOOKFORGE_COVER_WIDTH", strconv.Itoa(c.CoverWidth), "must be positive")
	}
	if c.CoverHeight < 1 {
		return ErrInvalidValue("BOOKFORGE_COVER_HEIGHT", strconv.Itoa(c.CoverHeight), "must be positive")
	}
	if c.DefaultLocale == "" {
		return ErrMissingConfig("BOOKFORGE_DEFAULT_LOCALE")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setSeconds(dst *time.Duration, src *int) {
	if src != nil {
		*dst = time.Duration(*src) * time.Second
	}
}
