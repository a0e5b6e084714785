package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Checkin = discord.SlashCommandCreate{
	Name:        "checkin",
	Description: "Daily check-in: coins + streak.",
}

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "Shows your coins and streak.",
}

func CheckinHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StoreOperationTimeout)
		defer cancel()

		res, err := b.Economy.CheckIn(ctx, e.User().ID)
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return utils.EH.Reply(e, checkinMessage(e.User().ID.String(), res), true)
	}
}

func checkinMessage(userID string, res economy.CheckInResult) string {
	if res.AlreadyCheckedIn {
		return strings.Join([]string{
			fmt.Sprintf("You already checked in today, <@%s> ✅", userID),
			fmt.Sprintf("📅 Date: %s", res.Day),
			fmt.Sprintf("🔥 Current streak: **%d** days", res.Streak),
			fmt.Sprintf("💰 Total coins: **%d**", res.Coins),
			fmt.Sprintf("✅ Total check-ins: **%d**", res.CheckinsTotal),
		}, "\n")
	}
	return strings.Join([]string{
		fmt.Sprintf("Thanks for checking in, <@%s> ✅", userID),
		fmt.Sprintf("📅 Date: %s", res.Day),
		fmt.Sprintf("🔥 New streak: **%d** days in a row!", res.Streak),
		fmt.Sprintf("💰 Reward: **%d** coins", res.Reward),
		fmt.Sprintf("💳 Total coins: **%d**", res.Coins),
		fmt.Sprintf("✅ Total check-ins: **%d**", res.CheckinsTotal),
	}, "\n")
}

func BalanceHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		acct := b.Economy.Balance(e.User().ID)
		focus := b.Rewards.Today(e.User().ID.String())

		lastCheckin := "📅 No check-in yet. Try `/checkin`!"
		if !acct.LastCheckin.IsZero() {
			lastCheckin = fmt.Sprintf("📅 Last check-in: **%s**", acct.LastCheckin)
		}
		return utils.EH.Reply(e, strings.Join([]string{
			fmt.Sprintf("💳 **CommitGoblin account for <@%s>**", e.User().ID),
			fmt.Sprintf("💰 Coins: **%s**", utils.FormatNumber(int64(acct.Coins))),
			fmt.Sprintf("🔥 Streak: **%d** days", acct.Streak),
			lastCheckin,
			fmt.Sprintf("✅ Total check-ins: **%d**", acct.CheckinsTotal),
			fmt.Sprintf("⏱️ Focus today: **%d**/%d min, **%d** bonus coins", focus.Minutes, b.Rewards.CapMinutes(), focus.Coins),
			fmt.Sprintf("🎤 Shoutouts given: **%d**", acct.ShoutoutsGiven),
			fmt.Sprintf("🎤 Shoutouts received: **%d**", acct.ShoutoutsReceived),
			fmt.Sprintf("🔥 Roasts given: **%d**", acct.RoastsGiven),
			fmt.Sprintf("🔥 Roasts received: **%d**", acct.RoastsReceived),
		}, "\n"), true)
	}
}
