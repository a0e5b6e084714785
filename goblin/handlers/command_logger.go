package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/disgoorg/disgo/handler"
)

const (
	statusSuccess = "success"
	statusSlow    = "slow"
	statusFailed  = "failed"
	statusTimeout = "timeout"
)

// WrapWithLogging logs each invocation of a command and records its outcome
// in the command metrics. A handler still running after
// config.CommandExecutionTimeout is reported as timed out; its goroutine is
// left to finish on its own.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return wrapWithLogging(name, h, config.CommandExecutionTimeout)
}

func wrapWithLogging(name string, h handler.CommandHandler, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		who := []any{
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
		}
		slog.Debug("Command started", append(who,
			slog.String("guild_id", guildString(e)),
			slog.String("channel_id", e.ChannelID().String()),
		)...)

		start := time.Now()
		done := make(chan error, 1)
		go func() { done <- h(e) }()

		var (
			err  error
			took time.Duration
		)
		select {
		case err = <-done:
			took = time.Since(start)
		case <-time.After(timeout):
			took = timeout
			err = fmt.Errorf("command %s timed out after %s", name, timeout)
		}

		status := commandStatus(err, took, timeout)
		metrics.RecordCommand(name, status, took)

		attrs := append(who, slog.String("status", status), slog.Duration("took", took))
		switch status {
		case statusFailed, statusTimeout:
			slog.Error("Command failed", append(attrs, slog.Any("error", err))...)
		case statusSlow:
			slog.Warn("Command executed slowly", attrs...)
		default:
			slog.Info("Command completed", attrs...)
		}
		return err
	}
}

// commandStatus labels one invocation for logs and metrics.
func commandStatus(err error, took, timeout time.Duration) string {
	switch {
	case err != nil && took >= timeout:
		return statusTimeout
	case err != nil:
		return statusFailed
	case took > config.SlowCommandThreshold:
		return statusSlow
	default:
		return statusSuccess
	}
}

func guildString(e *handler.CommandEvent) string {
	if id := e.GuildID(); id != nil {
		return id.String()
	}
	return ""
}
