package economy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/services"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "Shows available shop items.",
}

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "Buy an item from the shop.",
	Options: []discord.ApplicationCommandOption{
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
			MaxValue:    &[]int{config.MaxPurchaseAmount}[0],
		},
	},
}

var MyItems = discord.SlashCommandCreate{
	Name:        "my-items",
	Description: "Shows your inventory.",
}

func ShopHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		items := b.Economy.ListShop()
		if len(items) == 0 {
			return utils.EH.Reply(e, "🛒 The shop is currently empty.", true)
		}
		return utils.EH.Reply(e, shopMessage(items), true)
	}
}

func shopMessage(items []models.ShopItem) string {
	lines := []string{"🛒 **CommitGoblin's Shop**", ""}
	for _, item := range items {
		lines = append(lines,
			fmt.Sprintf("• **%s** (`%s`): %d coins", item.Name, item.ID, item.Cost),
			fmt.Sprintf("  _%s_", item.Description),
		)
	}
	return strings.Join(append(lines, "", "Use `/buy item:<id>` to purchase something."), "\n")
}

// withSuggestions appends "did you mean" hints to unknown-item errors.
func withSuggestions(b *goblin.Bot, query string, err error) error {
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	suggestions := services.SuggestItems(query, b.Economy.ItemNames(), config.ItemSuggestionLimit)
	if len(suggestions) == 0 {
		return err
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "`" + s + "`"
	}
	return errs.Wrap(errs.CodeNotFound, err, "%s\nDid you mean: %s?", errs.MessageOf(err), strings.Join(quoted, ", "))
}

// optionalAmount reads an integer option, defaulting to and flooring at 1.
func optionalAmount(e *handler.CommandEvent, name string) int {
	amount, ok := e.SlashCommandInteractionData().OptInt(name)
	if !ok || amount < 1 {
		return 1
	}
	return amount
}

func guildOf(e *handler.CommandEvent) snowflake.ID {
	if id := e.GuildID(); id != nil {
		return *id
	}
	return 0
}

func BuyHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		query := e.SlashCommandInteractionData().String("item")
		res, err := b.Economy.Purchase(ctx, economy.PurchaseRequest{
			UserID:  e.User().ID,
			GuildID: guildOf(e),
			Item:    query,
			Amount:  optionalAmount(e, "amount"),
		})
		if err != nil {
			return utils.EH.ReplyError(e, withSuggestions(b, query, err))
		}
		return utils.EH.Reply(e, purchaseMessage(res), true)
	}
}

func purchaseMessage(res economy.PurchaseResult) string {
	if kind, ok := res.Item.Kind.(models.RoleItem); ok {
		hours := kind.DurationHours
		if hours <= 0 {
			hours = config.DefaultRoleDurationHours
		}
		return strings.Join([]string{
			fmt.Sprintf("✨ You bought **%s** and received the role <@&%s>!", res.Item.Name, res.Role.ID),
			fmt.Sprintf("⏳ Valid for about %d hours.", hours),
			fmt.Sprintf("💰 Remaining coins: **%d**", res.Coins),
		}, "\n")
	}
	return strings.Join([]string{
		fmt.Sprintf("✅ You bought **%s**.", utils.FormatItemCountLabel(res.Item.Name, res.Amount)),
		fmt.Sprintf("💰 Remaining coins: **%d**", res.Coins),
		fmt.Sprintf("🎒 You now own **%s**.", utils.FormatItemCountLabel(res.Item.Name, res.Owned)),
	}, "\n")
}

func MyItemsHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		inv := b.Economy.Inventory(e.User().ID)
		if len(inv) == 0 {
			return utils.EH.Reply(e, "🎒 Your inventory is empty. Grab something with `/shop` and `/buy`.", true)
		}
		lines := []string{fmt.Sprintf("🎒 **Inventory of <@%s>**", e.User().ID), ""}
		for _, entry := range inv {
			lines = append(lines, fmt.Sprintf("• **%s** (`%s`): Amount: **%d**", entry.Name, entry.ItemID, entry.Count))
		}
		return utils.EH.Reply(e, strings.Join(lines, "\n"), true)
	}
}
