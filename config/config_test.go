package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "JWT_EXPIRATION", "SERVER_PORT", "LOG_LEVEL", "BREAK_LOOKBACK_WEEKS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v, want 24h", cfg.JWTExpiration)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.BreakLookbackWeeks != 5 {
		t.Errorf("BreakLookbackWeeks = %d, want 5", cfg.BreakLookbackWeeks)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("BREAK_LOOKBACK_WEEKS", "3")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.JWTExpiration != 2*time.Hour {
		t.Errorf("JWTExpiration = %v, want 2h", cfg.JWTExpiration)
	}
	if cfg.BreakLookbackWeeks != 3 {
		t.Errorf("BreakLookbackWeeks = %d, want 3", cfg.BreakLookbackWeeks)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "soon")
	t.Setenv("BREAK_LOOKBACK_WEEKS", "-2")

	cfg := Load()
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v, want 24h", cfg.JWTExpiration)
	}
	if cfg.BreakLookbackWeeks != 5 {
		t.Errorf("BreakLookbackWeeks = %d, want 5", cfg.BreakLookbackWeeks)
	}
}
