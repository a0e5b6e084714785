package handlers

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

// EffectReaper removes a user's expired timed effects.
type EffectReaper interface {
	ReapEffects(ctx context.Context, userID, guildID snowflake.ID) int
}

// WithEffectReaper reaps the invoking user's expired effects before the
// command runs. Outside a guild nothing is reaped.
func WithEffectReaper(reaper EffectReaper, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if guildID := e.GuildID(); guildID != nil {
			reap(reaper, e.User().ID, *guildID)
		}
		return h(e)
	}
}

func reap(reaper EffectReaper, userID, guildID snowflake.ID) {
	ctx, cancel := context.WithTimeout(context.Background(), config.StoreOperationTimeout)
	defer cancel()
	if n := reaper.ReapEffects(ctx, userID, guildID); n > 0 {
		slog.Info("Reaped expired effects",
			slog.String("type", "shop"),
			slog.String("user_id", userID.String()),
			slog.Int("count", n),
		)
	}
}

// Chain applies effect reaping and then logging to a command handler.
func Chain(name string, reaper EffectReaper, h handler.CommandHandler) handler.CommandHandler {
	return WrapWithLogging(name, WithEffectReaper(reaper, h))
}
