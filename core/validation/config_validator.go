package validation

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"bookforge/catalog"
	"bookforge/core"
)

// ValidationResult represents the result of a configuration validation check.
type ValidationResult struct {
	Valid   bool
	Warning bool // Valid but worth surfacing
	Message string
	Error   error
}

// ConfigValidator checks a loaded configuration against the ranges and
// resources the server needs at startup.
type ConfigValidator struct {
	cfg     *core.Config
	locales []string
	envPath string // Path to .env file (default: ".env")
}

// NewConfigValidator creates a ConfigValidator for cfg. locales lists the
// codes the locale registry can serve.
func NewConfigValidator(cfg *core.Config, locales []string) *ConfigValidator {
	return &ConfigValidator{
		cfg:     cfg,
		locales: locales,
		envPath: ".env",
	}
}

// WithEnvPath sets a custom path for the .env file.
func (v *ConfigValidator) WithEnvPath(path string) *ConfigValidator {
	v.envPath = path
	return v
}

// CheckEnvFile reports whether the .env file exists. A missing file is a
// warning: every setting has a default.
func (v *ConfigValidator) CheckEnvFile() ValidationResult {
	if err := CheckFileExists(v.envPath); err != nil {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: "No .env file, using defaults and process environment",
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Environment file found",
	}
}

// CheckPort validates the listen port.
func (v *ConfigValidator) CheckPort() ValidationResult {
	if v.cfg.Port < 1 || v.cfg.Port > 65535 {
		return ValidationResult{
			Valid:   false,
			Message: "Port out of range",
			Error:   core.ErrInvalidValue("BOOKFORGE_PORT", strconv.Itoa(v.cfg.Port), "must be between 1 and 65535"),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Listening on %s", v.cfg.Addr()),
	}
}

// CheckPageSizes validates the page size settings.
func (v *ConfigValidator) CheckPageSizes() ValidationResult {
	c := v.cfg
	switch {
	case c.MaxPageSize < 1 || c.MaxPageSize > catalog.MaxPageSize:
		return ValidationResult{
			Message: "Max page size outside allowed range",
			Error: core.ErrInvalidValue("BOOKFORGE_MAX_PAGE_SIZE", strconv.Itoa(c.MaxPageSize),
				fmt.Sprintf("must be between 1 and %d", catalog.MaxPageSize)),
		}
	case c.PageSize < 1 || c.PageSize > c.MaxPageSize:
		return ValidationResult{
			Message: "Page size outside allowed range",
			Error: core.ErrInvalidValue("BOOKFORGE_PAGE_SIZE", strconv.Itoa(c.PageSize),
				fmt.Sprintf("must be between 1 and %d", c.MaxPageSize)),
		}
	case c.MaxExportPages < 1:
		return ValidationResult{
			Message: "Max export pages must be positive",
			Error:   core.ErrInvalidValue("BOOKFORGE_MAX_EXPORT_PAGES", strconv.Itoa(c.MaxExportPages), "must be at least 1"),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("%d per page (max %d, export max %d pages)", c.PageSize, c.MaxPageSize, c.MaxExportPages),
	}
}

// CheckLocale validates that the default locale has a provider.
func (v *ConfigValidator) CheckLocale() ValidationResult {
	if !slices.Contains(v.locales, v.cfg.DefaultLocale) {
		return ValidationResult{
			Message: "Default locale not supported",
			Error:   core.ErrUnsupportedLocale(v.cfg.DefaultLocale, v.locales),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Default locale %s", v.cfg.DefaultLocale),
	}
}

// CheckLogDir validates that the log file's directory can be written.
func (v *ConfigValidator) CheckLogDir() ValidationResult {
	if v.cfg.LogFile == "" {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: "File logging disabled",
		}
	}
	dir := filepath.Dir(v.cfg.LogFile)
	if err := CheckDirWritable(dir); err != nil {
		return ValidationResult{
			Message: "Log directory not writable",
			Error:   core.ErrLogDirNotWritable(dir, err.Error()),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Logging to %s", v.cfg.LogFile),
	}
}

// CheckLogDiskSpace warns when the filesystem holding the log file is
// nearly full. Rotation keeps the files bounded, so low space never fails.
func (v *ConfigValidator) CheckLogDiskSpace() ValidationResult {
	if v.cfg.LogFile == "" {
		return ValidationResult{
			Valid:   true,
			Message: "File logging disabled",
		}
	}
	ds, err := GetDiskSpace(v.cfg.LogFile)
	if err != nil {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("Could not read disk space: %v", err),
		}
	}
	if ds.Free < MinLogDiskSpace {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("Only %s free on %s (want %s)", core.FormatBytes(ds.Free), ds.Path, core.FormatBytes(MinLogDiskSpace)),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("%s free (%.0f%% used)", core.FormatBytes(ds.Free), ds.UsedPercent()),
	}
}

// ValidateAll runs all checks and returns their results.
func (v *ConfigValidator) ValidateAll() []ValidationResult {
	return []ValidationResult{
		v.CheckEnvFile(),
		v.CheckPort(),
		v.CheckPageSizes(),
		v.CheckLocale(),
		v.CheckLogDir(),
		v.CheckLogDiskSpace(),
	}
}

// GetFirstError returns the first failing check's error, or nil.
func (v *ConfigValidator) GetFirstError() error {
	for _, r := range v.ValidateAll() {
		if !r.Valid && r.Error != nil {
			return r.Error
		}
	}
	return nil
}

// IsValid reports whether every check passed.
func (v *ConfigValidator) IsValid() bool {
	return v.GetFirstError() == nil
}
