package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var GiveCoins = discord.SlashCommandCreate{
	Name:        "admin-give-coins",
	Description: "Give coins to a user (admin only).",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Recipient",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Amount of coins (negative to deduct)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "reason",
			Description: "Reason (optional)",
			Required:    false,
		},
	},
}

var GiveItem = discord.SlashCommandCreate{
	Name:        "admin-give-item",
	Description: "Give an item to a user (admin only).",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Recipient",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "item",
			Description: "ID or name of the item",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Amount (default: 1)",
			Required:    false,
			MinValue:    &[]int{1}[0],
		},
	},
}

func GiveCoinsHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StoreOperationTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := data.Int("amount")
		reason := strings.TrimSpace(data.String("reason"))
		if reason == "" {
			reason = "no reason provided"
		}

		balance, err := b.Economy.AdminGiveCoins(ctx, b.IsAdmin(e.Member()), target.ID, amount, reason)
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return utils.EH.PostPublic(e, b.Notifier, b.AnnounceChannel(e.ChannelID()), strings.Join([]string{
			fmt.Sprintf("🪙 Admin give: <@%s> receives **%d** coins.", target.ID, amount),
			fmt.Sprintf("💰 New balance: **%d** coins.", balance),
			fmt.Sprintf("📝 Reason: %s", reason),
		}, "\n"))
	}
}

func GiveItemHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StoreOperationTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount, ok := data.OptInt("amount")
		if !ok || amount < 1 {
			amount = 1
		}

		item, owned, err := b.Economy.AdminGiveItem(ctx, b.IsAdmin(e.Member()), target.ID, data.String("item"), amount)
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return utils.EH.PostPublic(e, b.Notifier, b.AnnounceChannel(e.ChannelID()), strings.Join([]string{
			fmt.Sprintf("🎁 Admin give: <@%s> receives **%d× %s**.", target.ID, amount, item.Name),
			fmt.Sprintf("🎒 User now owns **%d× %s**.", owned, item.Name),
		}, "\n"))
	}
}
