package logger

import (
	"io"
	"log/slog"
	"strings"

	"notes-client/internal/config"
)

// ParseLevel переводит уровень из конфига (debug|info|warn|error) в slog.Level.
// Неизвестное значение трактуется как info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создает текстовый slog.Logger по настройкам логирования.
// verbose принудительно включает debug.
func New(w io.Writer, cfg *config.ConfigLogger, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = ParseLevel(cfg.Level)
	}
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard логгер, который ничего не пишет (для тестов и TUI без лог-файла)
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
