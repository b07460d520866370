package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// Init configures the process logger. Prod-like environments log JSON at info level,
// everything else logs text at debug level.
func Init(env string) {
	InitWriter(env, os.Stdout)
}

func InitWriter(env string, w io.Writer) {
	env = strings.ToLower(strings.TrimSpace(env))
	var h slog.Handler
	switch env {
	case "prod", "production", "release":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	l := slog.New(h)
	current.Store(l)
	slog.SetDefault(l)
}

func L() *slog.Logger { return current.Load() }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }

func Info(msg string, args ...any) { L().Info(msg, args...) }

func Warn(msg string, args ...any) { L().Warn(msg, args...) }

func Error(msg string, args ...any) { L().Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	L().Error(msg, args...)
	os.Exit(1)
}
