package util

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger("debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger = NewLogger("invalid")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", logger.GetLevel())
	}
}

func TestWithComponentPreservesLevel(t *testing.T) {
	logger := NewLogger("warn")
	tagged := WithComponent(logger, "simulator")
	if tagged.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level preserved, got %s", tagged.GetLevel())
	}
}
