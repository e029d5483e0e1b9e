package config

import (
	"testing"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"unset", "", 25},
		{"valid", "50", 50},
		{"invalid", "abc", 25},
		{"zero", "0", 25},
		{"negative", "-3", 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv("TEST_ENV_INT", tc.value)
			}
			if got := envInt("TEST_ENV_INT", 25); got != tc.expected {
				t.Errorf("envInt(%q) = %d, want %d", tc.value, got, tc.expected)
			}
		})
	}
}

func TestEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{"unset", "", 0.5},
		{"valid", "0.35", 0.35},
		{"zero is allowed", "0", 0},
		{"invalid", "loose", 0.5},
		{"negative", "-0.5", 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv("TEST_ENV_FLOAT", tc.value)
			}
			if got := envFloat("TEST_ENV_FLOAT", 0.5); got != tc.expected {
				t.Errorf("envFloat(%q) = %v, want %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Recognition.Tolerance != 0.5 {
		t.Errorf("default tolerance = %v, want 0.5", cfg.Recognition.Tolerance)
	}
	if cfg.Encoder.URL != "http://localhost:8000" {
		t.Errorf("default encoder URL = %q", cfg.Encoder.URL)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("default web port = %d, want 8080", cfg.Web.Port)
	}
}
