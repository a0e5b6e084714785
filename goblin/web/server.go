// Package web serves a read-only JSON view of the economy and the
// Prometheus metrics endpoint.
package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/economy/focus"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Standings is the leaderboard source.
type Standings interface {
	Leaderboard(by economy.LeaderboardSort, limit int) []economy.LeaderboardEntry
	TeamLeaderboard(by economy.LeaderboardSort, limit int) []economy.TeamStanding
}

// SessionLister lists running focus sessions per guild.
type SessionLister interface {
	ListActive(guildID snowflake.ID) []focus.ActiveSession
}

type Options struct {
	Version   string
	Commit    string
	Backend   string
	StartedAt time.Time
	// AllowOrigins is a comma separated CORS allow list. Empty disables CORS.
	AllowOrigins string
}

type Server struct {
	app       *fiber.App
	standings Standings
	sessions  SessionLister
	opts      Options
}

func New(standings Standings, sessions SessionLister, opts Options) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "CommitGoblin",
			ErrorHandler:          errorHandler,
			DisableStartupMessage: true,
			ReadTimeout:           config.HTTPReadTimeout,
		}),
		standings: standings,
		sessions:  sessions,
		opts:      opts,
	}

	s.app.Use(recover.New())
	s.app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	if opts.AllowOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: "GET,OPTIONS",
		}))
	}
	s.app.Use(requestLogger())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := s.app.Group("/api")
	api.Get("/leaderboard", s.leaderboard)
	api.Get("/teams/leaderboard", s.teamLeaderboard)
	api.Get("/guilds/:guildID/sessions", s.guildSessions)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()
	slog.Info("Status API listening", slog.String("type", "http"), slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}
