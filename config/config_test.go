package config

import (
	"testing"

	"github.com/yllada/vpn-composer/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel != "info" {
		t.Errorf("DefaultConfig() log level = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.EnableFileLog {
		t.Error("DefaultConfig() should enable file logging")
	}
	if cfg.ShareNewProfiles {
		t.Error("DefaultConfig() should not share new profiles")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{"debug kept", "debug", "debug"},
		{"error kept", "error", "error"},
		{"unknown falls back", "verbose", "info"},
		{"empty falls back", "", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			cfg.validate()
			if cfg.LogLevel != tt.want {
				t.Errorf("validate() log level = %q, want %q", cfg.LogLevel, tt.want)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		level string
		want  common.LogLevel
	}{
		{"debug", common.LevelDebug},
		{"info", common.LevelInfo},
		{"warn", common.LevelWarn},
		{"error", common.LevelError},
		{"bogus", common.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}
