package economy

import (
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Shows the user leaderboard.",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "Type of leaderboard",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Coins", Value: string(economy.SortCoins)},
				{Name: "Streak", Value: string(economy.SortStreak)},
				{Name: "Check-ins", Value: string(economy.SortCheckins)},
			},
		},
	},
}

func LeaderboardHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		by := economy.ParseLeaderboardSort(e.SlashCommandInteractionData().String("type"))
		entries := b.Economy.Leaderboard(by, config.LeaderboardSize)
		if len(entries) == 0 {
			return utils.EH.Reply(e, "No data for the leaderboard yet. Be the first to `/checkin`! ✨", true)
		}
		return utils.EH.PostPublic(e, b.Notifier, b.AnnounceChannel(e.ChannelID()), leaderboardMessage(by, entries))
	}
}

func leaderboardMessage(by economy.LeaderboardSort, entries []economy.LeaderboardEntry) string {
	title, label := "🏆 Leaderboard: Coins", "coins"
	switch by {
	case economy.SortStreak:
		title, label = "🔥 Leaderboard: Streak", "days streak"
	case economy.SortCheckins:
		title, label = "✅ Leaderboard: Check-ins", "check-ins"
	}

	lines := []string{title, ""}
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s **#%d** <@%s> **%d %s**", utils.Medal(i+1), i+1, entry.UserID, entry.Value(by), label))
	}
	return strings.Join(lines, "\n")
}
