package rewards

import (
	"context"
	"testing"
	"time"

	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)

func newAccountant(t *testing.T, now *time.Time) (*Accountant, *database.Store) {
	t.Helper()
	store := database.NewStore(repositories.NewMemoryRepository())
	require.NoError(t, store.Load(context.Background()))
	return NewAccountant(store, WithClock(func() time.Time { return *now })), store
}

func seedBucket(t *testing.T, store *database.Store, userID string, stats models.FocusStats) {
	t.Helper()
	require.NoError(t, store.Update(context.Background(), "seed", func(doc *models.Document) error {
		doc.Account(userID).FocusStats = stats
		return nil
	}))
}

func TestAccountant_Grant(t *testing.T) {
	today := models.DayOf(testNow)
	tests := []struct {
		name      string
		bucket    models.FocusStats
		minutes   int
		want      Grant
		wantCoins int
	}{
		{
			name:      "two blocks on empty bucket",
			minutes:   37,
			want:      Grant{Granted: true, Reason: ReasonOK, CoinsAwarded: 10, MinutesCounted: 37, TotalMinutesToday: 37, TotalCoinsToday: 10, CapMinutes: 120},
			wantCoins: 10,
		},
		{
			name:    "short session burns allowance",
			minutes: 10,
			want:    Grant{Reason: ReasonTooShort, MinutesCounted: 10, TotalMinutesToday: 10, CapMinutes: 120},
		},
		{
			name:    "remaining below one block",
			bucket:  models.FocusStats{Day: today, Minutes: 115, Coins: 35},
			minutes: 20,
			want:    Grant{Reason: ReasonTooShort, MinutesCounted: 5, TotalMinutesToday: 120, TotalCoinsToday: 35, CapMinutes: 120},
		},
		{
			name:    "cap reached",
			bucket:  models.FocusStats{Day: today, Minutes: 120, Coins: 40},
			minutes: 60,
			want:    Grant{Reason: ReasonCapped, TotalMinutesToday: 120, TotalCoinsToday: 40, CapMinutes: 120},
		},
		{
			name:      "stale bucket resets",
			bucket:    models.FocusStats{Day: today.Prev(), Minutes: 120, Coins: 40},
			minutes:   45,
			want:      Grant{Granted: true, Reason: ReasonOK, CoinsAwarded: 15, MinutesCounted: 45, TotalMinutesToday: 45, TotalCoinsToday: 15, CapMinutes: 120},
			wantCoins: 15,
		},
		{
			name:      "long session clamps to cap",
			minutes:   180,
			want:      Grant{Granted: true, Reason: ReasonOK, CoinsAwarded: 40, MinutesCounted: 120, TotalMinutesToday: 120, TotalCoinsToday: 40, CapMinutes: 120},
			wantCoins: 40,
		},
		{
			name:    "negative minutes count as zero",
			minutes: -5,
			want:    Grant{Reason: ReasonTooShort, CapMinutes: 120},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := testNow
			a, store := newAccountant(t, &now)
			if tt.bucket.Day != "" {
				seedBucket(t, store, "u1", tt.bucket)
			}

			got, err := a.Grant(context.Background(), "u1", tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			store.View(func(doc *models.Document) {
				assert.Equal(t, tt.wantCoins, doc.Users["u1"].Coins)
				assert.Equal(t, today, doc.Users["u1"].FocusStats.Day)
			})
		})
	}
}

func TestAccountant_NeverExceedsCapAcrossSessions(t *testing.T) {
	now := testNow
	a, store := newAccountant(t, &now)
	ctx := context.Background()

	total := 0
	for i := 0; i < 10; i++ {
		g, err := a.Grant(ctx, "u1", 25)
		require.NoError(t, err)
		total += g.MinutesCounted
		assert.LessOrEqual(t, g.TotalMinutesToday, 120)
	}
	assert.Equal(t, 120, total)

	store.View(func(doc *models.Document) {
		assert.Equal(t, doc.Users["u1"].FocusStats.Coins, doc.Users["u1"].Coins)
	})

	now = now.Add(24 * time.Hour)
	g, err := a.Grant(ctx, "u1", 15)
	require.NoError(t, err)
	assert.Equal(t, ReasonOK, g.Reason)
	assert.Equal(t, 15, g.TotalMinutesToday)
}

func TestAccountant_Today(t *testing.T) {
	now := testNow
	a, _ := newAccountant(t, &now)

	assert.Equal(t, models.FocusStats{Day: models.DayOf(now)}, a.Today("nobody"))

	_, err := a.Grant(context.Background(), "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, models.FocusStats{Day: models.DayOf(now), Minutes: 30, Coins: 10}, a.Today("u1"))
}
