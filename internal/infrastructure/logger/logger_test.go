package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewAppliesLevelAndBecomesGlobal(t *testing.T) {
	// GetLogger first mirrors startup order: the default logger exists before
	// configuration is loaded.
	if got := GetLogger(); got.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %s", got.GetLevel())
	}

	configured, err := New("debug", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if configured.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", configured.GetLevel())
	}
	if GetLogger().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected configured logger to replace the global one")
	}

	if _, err := New("info", "console"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
