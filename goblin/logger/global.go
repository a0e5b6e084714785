package logger

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/errs"
)

// emit tags a record with the lowercase type key CustomHandler colours by.
func emit(level slog.Level, kind, msg string, attrs []any) {
	slog.Log(context.Background(), level, msg, append([]any{slog.String("type", kind)}, attrs...)...)
}

// LogPersistence logs a failed document write. The in-memory state is kept.
func LogPersistence(operation, backend string, err error) {
	emit(slog.LevelError, "db", "Failed to persist document", []any{
		slog.String("code", string(errs.CodePersistence)),
		slog.String("operation", operation),
		slog.String("backend", backend),
		slog.Any("error", err),
	})
}

func LogSystem(msg string, attrs ...any) {
	emit(slog.LevelInfo, "sys", msg, attrs)
}

// LogFocus logs session scheduler events.
func LogFocus(msg string, attrs ...any) {
	emit(slog.LevelInfo, "focus", msg, attrs)
}

// LogShop logs purchases, grants and item use.
func LogShop(msg string, attrs ...any) {
	emit(slog.LevelInfo, "shop", msg, attrs)
}

func LogError(msg string, err error, attrs ...any) {
	emit(slog.LevelError, "error", msg, append([]any{slog.Any("error", err)}, attrs...))
}
