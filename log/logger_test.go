package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "rotate.log")

	rotationLog := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     1,
	}
	logger := newZap(rotationLog, zapcore.InfoLevel)

	line := strings.Repeat("x", 1024)
	for i := 0; i < 2048; i++ {
		logger.Info(line)
	}
	if err := logger.Sync(); err != nil {
		t.Logf("sync: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 2 {
		t.Errorf("expected rotated log files, got %d entries", len(entries))
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("active log file missing: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != zapcore.DebugLevel {
		t.Error("debug level not parsed")
	}
	if parseLevel("unknown") != zapcore.InfoLevel {
		t.Error("unknown level should default to info")
	}
}
