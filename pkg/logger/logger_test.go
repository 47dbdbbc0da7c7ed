package logger

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	log, err := New("debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log == nil {
		t.Fatal("logger is nil")
	}

	// Logging must not panic.
	log.Debug("debug message", String("key", "value"))
	log.Info("info message", Int("n", 1), Float64("f", 2.5))
	log.Warn("warn message", Any("v", []int{1, 2}))
	log.Error("error message", Error(errors.New("boom")))

	named := log.Named("sub")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info("from named logger")
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_EmptyLevelDefaultsToInfo(t *testing.T) {
	if _, err := New(""); err != nil {
		t.Errorf("New(\"\") error = %v", err)
	}
}
