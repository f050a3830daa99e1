package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// parseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger routes slog to a rotating file. The terminal belongs to the
// TUI, so nothing is written to stdout or stderr. The returned func closes
// the file.
func setupLogger(level, filename string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return func() {}, fmt.Errorf("creating log directory: %w", err)
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(h))
	return func() {
		_ = logWriter.Close()
	}, nil
}
