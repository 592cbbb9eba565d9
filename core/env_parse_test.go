package core

import (
	"testing"
	"time"
)

const testEnvKey = "BOOKFORGE_TEST_ENV_PARSE"

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv(testEnvKey, "")
	if got := GetEnvOrDefault(testEnvKey, "fallback"); got != "fallback" {
		t.Errorf("unset: got %q", got)
	}

	t.Setenv(testEnvKey, "   ")
	if got := GetEnvOrDefault(testEnvKey, "fallback"); got != "fallback" {
		t.Errorf("blank: got %q", got)
	}

	t.Setenv(testEnvKey, " de-DE ")
	if got := GetEnvOrDefault(testEnvKey, "fallback"); got != "de-DE" {
		t.Errorf("set: got %q, want trimmed value", got)
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 20},
		{"50", 50},
		{" 7 ", 7},
		{"-3", -3},
		{"ten", 20},
		{"2.5", 20},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(testEnvKey, tt.value)
			if got := ParseIntEnv(testEnvKey, 20); got != tt.want {
				t.Errorf("ParseIntEnv(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"1", false, true},
		{"false", true, false},
		{"Off", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(testEnvKey, tt.value)
			if got := ParseBoolEnv(testEnvKey, tt.def); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	def := 10 * time.Second
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", def},
		{"30", 30 * time.Second},
		{"0", 0},
		{"1m30s", 90 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"-5", def},
		{"-1s", def},
		{"soon", def},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(testEnvKey, tt.value)
			if got := ParseDurationEnv(testEnvKey, def); got != tt.want {
				t.Errorf("ParseDurationEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
