package goblin

import (
	"context"
	"log/slog"
	"time"

	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/economy/focus"
	"github.com/afterclass/commitgoblin/goblin/economy/rewards"
	"github.com/afterclass/commitgoblin/goblin/services"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
		StartedAt: time.Now(),
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	StartedAt time.Time

	Store     *database.Store
	Economy   *economy.Service
	Rewards   *rewards.Accountant
	Scheduler *focus.Scheduler
	Notifier  *services.DiscordNotifier
	Roles     *services.RoleService
	Backups   *services.BackupService
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagRoles)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// AnnounceChannel returns the configured bot channel, or fallback when none
// is set.
func (b *Bot) AnnounceChannel(fallback snowflake.ID) snowflake.ID {
	if b.Cfg.Bot.ChannelID != 0 {
		return b.Cfg.Bot.ChannelID
	}
	return fallback
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("CommitGoblin is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("your focus sessions"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// IsAdmin reports whether member has the Administrator permission or the
// configured admin role.
func (b *Bot) IsAdmin(member *discord.ResolvedMember) bool {
	if member == nil {
		return false
	}
	if member.Permissions.Has(discord.PermissionAdministrator) {
		return true
	}
	if b.Cfg.Bot.AdminRole == 0 {
		return false
	}
	for _, id := range member.RoleIDs {
		if id == b.Cfg.Bot.AdminRole {
			return true
		}
	}
	return false
}
