package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/commands"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/economy/focus"
	"github.com/afterclass/commitgoblin/goblin/economy/rewards"
	"github.com/afterclass/commitgoblin/goblin/services"
	"github.com/afterclass/commitgoblin/goblin/web"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := goblin.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(cfg.Log.Handler()))

	slog.Info("Starting CommitGoblin",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	if err = cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}

	storeStart := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	store, err := goblin.OpenStore(ctx, *cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to open store",
			slog.String("type", "db"),
			slog.String("driver", cfg.Store.Driver),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(storeStart)))
		os.Exit(-1)
	}
	slog.Info("Store loaded",
		slog.String("type", "db"),
		slog.String("backend", store.Backend()),
		slog.Duration("took", time.Since(storeStart)))

	b := goblin.New(*cfg, version, commit)
	b.Store = store
	b.Rewards = rewards.NewAccountant(store)
	b.Notifier = services.NewDiscordNotifier(cfg.Notifier.Rate, cfg.Notifier.Burst)
	b.Scheduler = focus.NewScheduler(b.Rewards, b.Notifier)

	h := handler.New()
	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	b.Roles = services.NewRoleServiceFromClient(b.Client)
	b.Economy = economy.NewService(store, b.Roles)
	b.Notifier.SetClient(b.Client)
	commands.Register(h, b)

	b.Backups, err = goblin.NewBackups(context.Background(), cfg.Spaces, store)
	if err != nil {
		slog.Error("Failed to configure backups", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	if b.Backups != nil {
		if err = b.Backups.Start(cfg.Spaces.Schedule); err != nil {
			slog.Error("Failed to schedule backups", slog.String("type", "sys"), slog.Any("error", err))
			os.Exit(-1)
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	if cfg.HTTP.Addr != "" {
		api := web.New(b.Economy, b.Scheduler, web.Options{
			Version:      version,
			Commit:       commit,
			Backend:      store.Backend(),
			StartedAt:    b.StartedAt,
			AllowOrigins: cfg.HTTP.AllowOrigins,
		})
		g.Go(func() error {
			return api.Serve(gctx, cfg.HTTP.Addr)
		})
	}

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("error_details", fmt.Sprintf("%+v", err)),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	openCtx, openCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = b.Client.OpenGateway(openCtx)
	openCancel()
	if err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	<-gctx.Done()
	slog.Info("Shutting down bot...", slog.String("type", "sys"))

	shutdown(b)
	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Background task failed", slog.String("type", "sys"), slog.Any("error", err))
	}
}

// shutdown cancels pending timers first so no callback writes after the
// store is closed.
func shutdown(b *goblin.Bot) {
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	b.Scheduler.Shutdown()
	if b.Backups != nil {
		b.Backups.Stop(ctx)
	}
	b.Client.Close(ctx)
	if err := b.Store.Close(); err != nil {
		slog.Error("Failed to close store", slog.String("type", "db"), slog.Any("error", err))
	}
}
