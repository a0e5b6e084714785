package economy

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/disgoorg/snowflake/v2"
)

// reapable reports whether e can be reaped from inside guildID. Effects
// recorded before guild ids were stored are reaped in any guild.
func reapable(e models.Effect, guildID snowflake.ID) bool {
	return e.GuildID == "" || e.GuildID == guildID.String()
}

// ReapEffects drops the user's expired effects and makes one revoke attempt
// per dropped role. A failed revoke is logged; the effect stays dropped.
// It returns the number of effects removed.
func (s *Service) ReapEffects(ctx context.Context, userID, guildID snowflake.ID) int {
	if guildID == 0 {
		return 0
	}
	now := s.now()
	uid := key(userID)

	due := false
	s.store.View(func(doc *models.Document) {
		u, ok := doc.LookupAccount(uid)
		if !ok {
			return
		}
		for _, e := range u.ActiveEffects {
			if e.Expired(now) && reapable(e, guildID) {
				due = true
				return
			}
		}
	})
	if !due {
		return 0
	}

	var expired []models.Effect
	_ = s.store.Update(ctx, "reap_effects", func(doc *models.Document) error {
		u := doc.Account(uid)
		remaining := u.ActiveEffects[:0:0]
		for _, e := range u.ActiveEffects {
			if e.Expired(now) && reapable(e, guildID) {
				expired = append(expired, e)
				continue
			}
			remaining = append(remaining, e)
		}
		u.ActiveEffects = remaining
		return nil
	})

	for _, e := range expired {
		if e.Type != models.EffectTypeRole || e.RoleID == "" {
			continue
		}
		roleID, err := snowflake.Parse(e.RoleID)
		if err != nil {
			logger.LogError("Expired effect has an invalid role id", err, slog.String("user_id", uid))
			continue
		}
		if err := s.roles.RevokeRole(ctx, guildID, userID, roleID); err != nil {
			logger.LogError("Failed to revoke expired role", err,
				slog.String("user_id", uid),
				slog.String("role_id", e.RoleID),
			)
			continue
		}
		logger.LogShop("Expired role revoked",
			slog.String("user_id", uid),
			slog.String("role_id", e.RoleID),
			slog.String("item_id", e.ItemID),
		)
	}
	return len(expired)
}
