// Package rewards converts completed focus minutes into coins under a daily cap.
package rewards

import (
	"context"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/metrics"
)

type Reason string

const (
	ReasonOK       Reason = "ok"
	ReasonCapped   Reason = "capped"
	ReasonTooShort Reason = "too_short"
)

// Grant is the outcome of one reward evaluation.
type Grant struct {
	Granted           bool
	Reason            Reason
	CoinsAwarded      int
	MinutesCounted    int
	TotalMinutesToday int
	TotalCoinsToday   int
	CapMinutes        int
}

// Accountant is the only path that credits focus-derived coins.
type Accountant struct {
	store         *database.Store
	now           func() time.Time
	capMinutes    int
	blockMinutes  int
	coinsPerBlock int
}

type Option func(*Accountant)

// WithClock overrides the wall clock used to pick the UTC day.
func WithClock(now func() time.Time) Option {
	return func(a *Accountant) { a.now = now }
}

func NewAccountant(store *database.Store, opts ...Option) *Accountant {
	a := &Accountant{
		store:         store,
		now:           time.Now,
		capMinutes:    config.FocusCapMinutesPerDay,
		blockMinutes:  config.FocusBlockMinutes,
		coinsPerBlock: config.FocusCoinsPerBlock,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Grant records minutes of completed focus for userID. Minutes up to the
// remaining daily allowance are always counted against the cap, including a
// remainder too small to earn a block.
func (a *Accountant) Grant(ctx context.Context, userID string, minutes int) (Grant, error) {
	if minutes < 0 {
		minutes = 0
	}
	today := models.DayOf(a.now())

	var out Grant
	err := a.store.Update(ctx, "focus_reward", func(doc *models.Document) error {
		stats := &doc.Account(userID).FocusStats
		if stats.Day != today {
			*stats = models.FocusStats{Day: today}
		}
		out = a.apply(stats, minutes)
		if out.Granted {
			doc.Account(userID).Coins += out.CoinsAwarded
		}
		return nil
	})
	if err != nil {
		return Grant{}, err
	}
	metrics.AddCoinsAwarded("focus", out.CoinsAwarded)
	return out, nil
}

// Today returns the caller's focus bucket for the current UTC day.
func (a *Accountant) Today(userID string) models.FocusStats {
	today := models.DayOf(a.now())
	stats := models.FocusStats{Day: today}
	a.store.View(func(doc *models.Document) {
		if u, ok := doc.LookupAccount(userID); ok && u.FocusStats.Day == today {
			stats = u.FocusStats
		}
	})
	return stats
}

func (a *Accountant) CapMinutes() int {
	return a.capMinutes
}

func (a *Accountant) apply(stats *models.FocusStats, minutes int) (out Grant) {
	out.CapMinutes = a.capMinutes
	defer func() {
		out.TotalMinutesToday = stats.Minutes
		out.TotalCoinsToday = stats.Coins
	}()

	remaining := a.capMinutes - stats.Minutes
	if remaining <= 0 {
		out.Reason = ReasonCapped
		return
	}

	countable := min(minutes, remaining)
	stats.Minutes += countable
	out.MinutesCounted = countable

	blocks := countable / a.blockMinutes
	if blocks == 0 {
		out.Reason = ReasonTooShort
		return
	}

	coins := blocks * a.coinsPerBlock
	stats.Coins += coins
	out.Granted = true
	out.Reason = ReasonOK
	out.CoinsAwarded = coins
	return
}
