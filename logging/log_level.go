package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// ParseLogLevel reads a BOOKFORGE_LOG_LEVEL value in any case. "warning"
// is accepted for warn; empty or unknown values return def.
func ParseLogLevel(s string, def zapcore.Level) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil || s == "" {
		return def
	}
	return level
}
