package web

import (
	"strconv"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"
)

type leaderboardEntry struct {
	Place         int    `json:"place"`
	UserID        string `json:"user_id"`
	Coins         int    `json:"coins"`
	Streak        int    `json:"streak"`
	CheckinsTotal int    `json:"checkins_total"`
}

type teamStanding struct {
	Place         int    `json:"place"`
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	Members       int    `json:"members"`
	Coins         int    `json:"coins"`
	CheckinsTotal int    `json:"checkins_total"`
	BestStreak    int    `json:"best_streak"`
}

type activeSession struct {
	UserID    string    `json:"user_id"`
	ChannelID string    `json:"channel_id"`
	Kind      string    `json:"kind"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return sendSuccess(c, fiber.Map{
		"status":  "healthy",
		"version": s.opts.Version,
		"commit":  s.opts.Commit,
		"store":   s.opts.Backend,
		"uptime":  time.Since(s.opts.StartedAt).Truncate(time.Second).String(),
	}, "Health check successful")
}

// queryLimit reads ?limit=, defaulting to the in-chat leaderboard size.
func queryLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return config.LeaderboardSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > config.APIMaxLimit {
		return 0, fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(config.APIMaxLimit))
	}
	return n, nil
}

func querySort(c *fiber.Ctx) (economy.LeaderboardSort, error) {
	raw := c.Query("type")
	by := economy.ParseLeaderboardSort(raw)
	if raw != "" && string(by) != raw {
		return "", fiber.NewError(fiber.StatusBadRequest, "type must be one of coins, streak, checkins")
	}
	return by, nil
}

func (s *Server) leaderboard(c *fiber.Ctx) error {
	by, err := querySort(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	entries := s.standings.Leaderboard(by, limit)
	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{
			Place:         i + 1,
			UserID:        e.UserID,
			Coins:         e.Coins,
			Streak:        e.Streak,
			CheckinsTotal: e.CheckinsTotal,
		}
	}
	return sendSuccess(c, out, "Leaderboard by "+string(by))
}

func (s *Server) teamLeaderboard(c *fiber.Ctx) error {
	by, err := querySort(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	standings := s.standings.TeamLeaderboard(by, limit)
	out := make([]teamStanding, len(standings))
	for i, t := range standings {
		out[i] = teamStanding{
			Place:         i + 1,
			TeamID:        t.TeamID,
			Name:          t.Name,
			Members:       t.Members,
			Coins:         t.Coins,
			CheckinsTotal: t.CheckinsTotal,
			BestStreak:    t.BestStreak,
		}
	}
	return sendSuccess(c, out, "Team leaderboard by "+string(by))
}

func (s *Server) guildSessions(c *fiber.Ctx) error {
	guildID, err := snowflake.Parse(c.Params("guildID"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid guild id")
	}

	sessions := s.sessions.ListActive(guildID)
	out := make([]activeSession, len(sessions))
	for i, sess := range sessions {
		out[i] = activeSession{
			UserID:    sess.UserID.String(),
			ChannelID: sess.ChannelID.String(),
			Kind:      string(sess.Kind),
			StartedAt: sess.StartedAt,
		}
	}
	return sendSuccess(c, out, "Active sessions")
}
