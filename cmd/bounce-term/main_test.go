package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerKeepsStderrQuiet(t *testing.T) {
	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	if err != nil {
		t.Fatal(err)
	}
	original := os.Stderr
	os.Stderr = stderr
	defer func() { os.Stderr = original }()

	log, closeLog, err := newLogger("", "debug")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Info("frame drawn", "tick", 1)
	log.Error("draw failed")
	closeLog()

	info, err := stderr.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("logger wrote %d bytes to stderr", info.Size())
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounce.log")

	log, closeLog, err := newLogger(path, "info")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Debug("hidden")
	log.Info("stopped", "ticks", 42)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"stopped"`) || !strings.Contains(out, `"ticks":42`) {
		t.Errorf("log file = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
}

func TestNewLoggerBadPath(t *testing.T) {
	if _, _, err := newLogger(filepath.Join(t.TempDir(), "missing", "bounce.log"), "info"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
