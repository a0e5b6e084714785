package economy

import (
	"context"
	"testing"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Night Owls":       "night-owls",
		"  C++ & Go!!  ":   "c-go",
		"already-slugged":  "already-slugged",
		"🐉":                "",
		"Über   Coders 42": "ber-coders-42",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	team, err := f.svc.CreateTeam(ctx, alice, "  Night Owls ", "")
	require.NoError(t, err)
	assert.Equal(t, "night-owls", team.ID)
	assert.Equal(t, "Night Owls", team.Name)
	assert.Equal(t, config.DefaultTeamDescription, team.Description)
	assert.Equal(t, []string{key(alice)}, team.Members)
	assert.Equal(t, f.clock.now, team.CreatedAt)

	_, err = f.svc.CreateTeam(ctx, bob, "night owls", "dupe")
	assert.ErrorIs(t, err, errs.ErrExists)

	_, err = f.svc.CreateTeam(ctx, bob, "   ", "")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	// Distinct names that slug to the same id get a suffix.
	other, err := f.svc.CreateTeam(ctx, bob, "Night-Owls!", "")
	require.NoError(t, err)
	assert.Equal(t, "night-owls-1", other.ID)

	emoji, err := f.svc.CreateTeam(ctx, carol, "🦉", "")
	require.NoError(t, err)
	assert.Equal(t, "team-3", emoji.ID)
}

func TestService_JoinLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.CreateTeam(ctx, alice, "Owls", "")
	require.NoError(t, err)

	team, err := f.svc.JoinTeam(ctx, bob, "OWLS")
	require.NoError(t, err)
	assert.Equal(t, []string{key(alice), key(bob)}, team.Members)

	_, err = f.svc.JoinTeam(ctx, bob, "owls")
	assert.ErrorIs(t, err, errs.ErrAlreadyDone)

	_, err = f.svc.JoinTeam(ctx, bob, "hawks")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	team, err = f.svc.LeaveTeam(ctx, bob, "owls")
	require.NoError(t, err)
	assert.Equal(t, []string{key(alice)}, team.Members)

	_, err = f.svc.LeaveTeam(ctx, bob, "owls")
	assert.ErrorIs(t, err, errs.ErrAlreadyDone)
}

func TestService_CreatorOnlyOperations(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func(f *fixture) error
		wantCode errs.Code
		check    func(t *testing.T, team models.Team)
	}{
		{
			name: "rename by creator",
			run: func(f *fixture) error {
				_, err := f.svc.RenameTeam(ctx, alice, "owls", "Night Owls")
				return err
			},
			check: func(t *testing.T, team models.Team) {
				assert.Equal(t, "Night Owls", team.Name)
				assert.Equal(t, "owls", team.ID)
			},
		},
		{
			name: "rename by member",
			run: func(f *fixture) error {
				_, err := f.svc.RenameTeam(ctx, bob, "owls", "Bob's Owls")
				return err
			},
			wantCode: errs.CodeForbidden,
		},
		{
			name: "rename onto another team",
			run: func(f *fixture) error {
				_, err := f.svc.RenameTeam(ctx, alice, "owls", "HAWKS")
				return err
			},
			wantCode: errs.CodeExists,
		},
		{
			name: "rename case only",
			run: func(f *fixture) error {
				_, err := f.svc.RenameTeam(ctx, alice, "owls", "OWLS")
				return err
			},
			check: func(t *testing.T, team models.Team) {
				assert.Equal(t, "OWLS", team.Name)
			},
		},
		{
			name: "describe by creator",
			run: func(f *fixture) error {
				_, err := f.svc.SetTeamDescription(ctx, alice, "owls", "We ship at night.")
				return err
			},
			check: func(t *testing.T, team models.Team) {
				assert.Equal(t, "We ship at night.", team.Description)
			},
		},
		{
			name: "describe by member",
			run: func(f *fixture) error {
				_, err := f.svc.SetTeamDescription(ctx, bob, "owls", "hijacked")
				return err
			},
			wantCode: errs.CodeForbidden,
		},
		{
			name: "kick member",
			run: func(f *fixture) error {
				_, err := f.svc.KickFromTeam(ctx, alice, "owls", bob)
				return err
			},
			check: func(t *testing.T, team models.Team) {
				assert.Equal(t, []string{key(alice)}, team.Members)
			},
		},
		{
			name: "kick self",
			run: func(f *fixture) error {
				_, err := f.svc.KickFromTeam(ctx, alice, "owls", alice)
				return err
			},
			wantCode: errs.CodeInvalidInput,
		},
		{
			name: "kick by member",
			run: func(f *fixture) error {
				_, err := f.svc.KickFromTeam(ctx, bob, "owls", alice)
				return err
			},
			wantCode: errs.CodeForbidden,
		},
		{
			name: "kick non-member",
			run: func(f *fixture) error {
				_, err := f.svc.KickFromTeam(ctx, alice, "owls", carol)
				return err
			},
			wantCode: errs.CodeAlreadyDone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateTeam(ctx, alice, "Owls", "Night shift.")
			require.NoError(t, err)
			_, err = f.svc.CreateTeam(ctx, carol, "Hawks", "")
			require.NoError(t, err)
			_, err = f.svc.JoinTeam(ctx, bob, "owls")
			require.NoError(t, err)
			before, err := f.svc.TeamInfo("owls")
			require.NoError(t, err)

			err = tt.run(f)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errs.CodeOf(err))
				after, infoErr := f.svc.TeamInfo(before.Name)
				require.NoError(t, infoErr)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)

			team, err := f.svc.TeamInfo("owls")
			if err != nil {
				team, err = f.svc.TeamInfo("night owls")
			}
			require.NoError(t, err)
			tt.check(t, team)
		})
	}
}

func TestService_ListTeamsAndUserTeams(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"Zebras", "Owls", "Hawks"} {
		_, err := f.svc.CreateTeam(ctx, alice, name, "")
		require.NoError(t, err)
	}
	_, err := f.svc.JoinTeam(ctx, bob, "zebras")
	require.NoError(t, err)

	var names []string
	for _, team := range f.svc.ListTeams(0) {
		names = append(names, team.Name)
	}
	assert.Equal(t, []string{"Zebras", "Hawks", "Owls"}, names)
	assert.Len(t, f.svc.ListTeams(2), 2)

	names = names[:0]
	for _, team := range f.svc.UserTeams(alice) {
		names = append(names, team.Name)
	}
	assert.Equal(t, []string{"Hawks", "Owls", "Zebras"}, names)
	assert.Len(t, f.svc.UserTeams(bob), 1)
	assert.Empty(t, f.svc.UserTeams(carol))
}

func TestService_Leaderboards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Update(ctx, "test", func(doc *models.Document) error {
		a, b, c := doc.Account(key(alice)), doc.Account(key(bob)), doc.Account(key(carol))
		a.Coins, a.Streak, a.CheckinsTotal = 100, 3, 10
		b.Coins, b.Streak, b.CheckinsTotal = 100, 5, 4
		c.Coins, c.Streak, c.CheckinsTotal = 40, 5, 10
		return nil
	}))

	ids := func(entries []LeaderboardEntry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.UserID)
		}
		return out
	}
	assert.Equal(t, []string{key(bob), key(alice), key(carol)}, ids(f.svc.Leaderboard(SortCoins, 10)))
	assert.Equal(t, []string{key(bob), key(carol), key(alice)}, ids(f.svc.Leaderboard(SortStreak, 10)))
	assert.Equal(t, []string{key(carol), key(alice), key(bob)}, ids(f.svc.Leaderboard(SortCheckins, 10)))
	assert.Len(t, f.svc.Leaderboard(SortCoins, 1), 1)

	_, err := f.svc.CreateTeam(ctx, alice, "Owls", "")
	require.NoError(t, err)
	_, err = f.svc.JoinTeam(ctx, bob, "owls")
	require.NoError(t, err)
	_, err = f.svc.CreateTeam(ctx, carol, "Hawks", "")
	require.NoError(t, err)
	_, err = f.svc.CreateTeam(ctx, carol, "Empty", "")
	require.NoError(t, err)
	_, err = f.svc.LeaveTeam(ctx, carol, "empty")
	require.NoError(t, err)

	standings := f.svc.TeamLeaderboard(SortCoins, 10)
	require.Len(t, standings, 2)
	assert.Equal(t, TeamStanding{TeamID: "owls", Name: "Owls", Members: 2, Coins: 200, CheckinsTotal: 14, BestStreak: 5}, standings[0])
	assert.Equal(t, "hawks", standings[1].TeamID)

	// Equal best streak: more coins wins.
	standings = f.svc.TeamLeaderboard(SortStreak, 10)
	assert.Equal(t, "owls", standings[0].TeamID)
	assert.Equal(t, 5, standings[0].Value(SortStreak))

	assert.Equal(t, SortCoins, ParseLeaderboardSort("bogus"))
	assert.Equal(t, SortCheckins, ParseLeaderboardSort("checkins"))
}
