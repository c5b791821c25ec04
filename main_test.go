package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn", "json")
	if err != nil {
		t.Fatal(err)
	}
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}

	if _, err := newLogger("loud", "text"); err == nil {
		t.Error("bad level: expected an error")
	}
	if _, err := newLogger("info", "xml"); err == nil {
		t.Error("bad format: expected an error")
	}
}
