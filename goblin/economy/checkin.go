package economy

import (
	"context"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/disgoorg/snowflake/v2"
)

type CheckInResult struct {
	AlreadyCheckedIn bool
	Streak           int
	Reward           int
	Coins            int
	CheckinsTotal    int
	Day              models.Day
}

// CheckIn records the daily check-in. A repeat on the same UTC day changes
// nothing; the day after the last check-in extends the streak; any larger gap
// restarts it at 1.
func (s *Service) CheckIn(ctx context.Context, userID snowflake.ID) (CheckInResult, error) {
	today := models.DayOf(s.now())

	var out CheckInResult
	err := s.store.Update(ctx, "checkin", func(doc *models.Document) error {
		u := doc.Account(key(userID))
		if u.LastCheckin == today {
			out = CheckInResult{
				AlreadyCheckedIn: true,
				Streak:           u.Streak,
				Coins:            u.Coins,
				CheckinsTotal:    u.CheckinsTotal,
				Day:              today,
			}
			return nil
		}

		if !u.LastCheckin.IsZero() && u.LastCheckin == today.Prev() {
			u.Streak++
		} else {
			u.Streak = 1
		}
		u.CheckinsTotal++

		reward := CheckInReward(u.Streak)
		u.Coins += reward
		u.LastCheckin = today

		out = CheckInResult{
			Streak:        u.Streak,
			Reward:        reward,
			Coins:         u.Coins,
			CheckinsTotal: u.CheckinsTotal,
			Day:           today,
		}
		return nil
	})
	if err != nil {
		return CheckInResult{}, err
	}

	if !out.AlreadyCheckedIn {
		metrics.AddCoinsAwarded("checkin", out.Reward)
		slog.Info("User checked in",
			slog.String("type", "cmd"),
			slog.String("user_id", userID.String()),
			slog.Int("streak", out.Streak),
			slog.Int("reward", out.Reward),
		)
	}
	return out, nil
}

// CheckInReward is 10 coins plus one per streak day, capped at 10 extra.
func CheckInReward(streak int) int {
	return config.CheckinBaseReward + min(streak, config.CheckinMaxStreakBonus)
}

// Balance returns a snapshot of the user's account. Unknown users get an
// empty account without one being created.
func (s *Service) Balance(userID snowflake.ID) models.UserAccount {
	var out models.UserAccount
	s.store.View(func(doc *models.Document) {
		if u, ok := doc.LookupAccount(key(userID)); ok {
			out = u.Clone()
			return
		}
		out = models.NewUserAccount().Clone()
	})
	return out
}
