package teams

import (
	"fmt"
	"strings"
	"testing"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/stretchr/testify/assert"
)

func TestTeamLeaderboardMessage(t *testing.T) {
	standings := []economy.TeamStanding{
		{TeamID: "night-owls", Name: "Night Owls", Members: 3, Coins: 120, CheckinsTotal: 9, BestStreak: 4},
		{TeamID: "early-birds", Name: "Early Birds", Members: 1, Coins: 40, CheckinsTotal: 2, BestStreak: 6},
	}

	tests := []struct {
		name  string
		by    economy.LeaderboardSort
		title string
		line  string
	}{
		{"coins", economy.SortCoins, "🏆 Team Leaderboard: Coins (Total)", "🥇 **#1** **Night Owls**: **120 coins** (3 members)"},
		{"checkins", economy.SortCheckins, "📊 Team Leaderboard: Check-ins (Total)", "🥈 **#2** **Early Birds**: **2 check-ins** (1 members)"},
		{"streak", economy.SortStreak, "🔥 Team Leaderboard: Best Streak", "**4 days streak (best member)**"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := teamLeaderboardMessage(tt.by, standings)
			assert.True(t, strings.HasPrefix(msg, tt.title))
			assert.Contains(t, msg, tt.line)
		})
	}
}

func TestTeamInfoMessage(t *testing.T) {
	team := models.Team{ID: "night-owls", Name: "Night Owls", Description: "Late coders.", CreatedBy: "1"}
	for i := 1; i <= 12; i++ {
		team.Members = append(team.Members, fmt.Sprint(i))
	}

	msg := teamInfoMessage(team)
	assert.Contains(t, msg, "📘 **Team: Night Owls**")
	assert.Contains(t, msg, "👥 Members (12): <@1>, <@2>")
	assert.Contains(t, msg, "<@10>")
	assert.NotContains(t, msg, "<@11>")
	assert.Contains(t, msg, "🆔 ID: `night-owls`")

	empty := teamInfoMessage(models.Team{ID: "x", Name: "X", CreatedBy: "1"})
	assert.Contains(t, empty, "👥 Members (0): none")
}

func TestTeamListPage(t *testing.T) {
	var teams []models.Team
	for i := 0; i < 12; i++ {
		teams = append(teams, models.Team{Name: fmt.Sprintf("T%02d", i), Members: []string{"1"}})
	}
	teams[0].Members = append(teams[0].Members, "2")

	first := teamListPage(teams, 0)
	assert.Equal(t, 10, strings.Count(first, "\n"))
	assert.Contains(t, first, "• **T00**: 2 members")
	assert.Contains(t, first, "• **T01**: 1 member\n")

	second := teamListPage(teams, 1)
	assert.Equal(t, 2, strings.Count(second, "\n"))
	assert.Empty(t, teamListPage(teams, 2))
}
