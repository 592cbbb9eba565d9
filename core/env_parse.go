package core

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns the trimmed value of key and whether it is non-empty.
func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// GetEnvOrDefault returns the value of key, or def when it is unset or blank.
func GetEnvOrDefault(key, def string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return def
}

// ParseIntEnv reads key as an integer. Unparseable values yield def.
func ParseIntEnv(key string, def int) int {
	v, ok := lookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ParseBoolEnv reads key as a boolean. true/1/yes/on and false/0/no/off are
// accepted in any case; anything else yields def.
func ParseBoolEnv(key string, def bool) bool {
	v, ok := lookupEnv(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

// ParseDurationEnv reads key either as whole seconds ("30") or as a Go
// duration ("1m30s"). Negative or unparseable values yield def.
func ParseDurationEnv(key string, def time.Duration) time.Duration {
	v, ok := lookupEnv(key)
	if !ok {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
