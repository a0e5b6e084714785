package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

var UseItem = discord.SlashCommandCreate{
	Name:        "use-item",
	Description: "Use an item from your inventory.",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "item",
			Description: "ID or name of the item",
			Required:    true,
		},
		discord.ApplicationCommandOptionUser{
			Name:        "target",
			Description: "Target user (for shoutout/roast)",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "note",
			Description: "Optional note (e.g. for shoutout)",
			Required:    false,
		},
	},
}

func UseItemHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StoreOperationTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		query := data.String("item")
		req := economy.UseRequest{
			UserID: e.User().ID,
			Item:   query,
			Note:   strings.TrimSpace(data.String("note")),
		}
		if target, ok := data.OptUser("target"); ok {
			req.Target = target.ID
		}

		res, err := b.Economy.UseItem(ctx, req)
		if err != nil {
			return utils.EH.ReplyError(e, withSuggestions(b, query, err))
		}

		channel := b.AnnounceChannel(e.ChannelID())
		switch kind := res.Item.Kind.(type) {
		case models.UsableItem:
			if kind.Command == models.UsableShoutout {
				return utils.EH.PostPublic(e, b.Notifier, channel, shoutoutMessage(e.User().ID, res))
			}
			return utils.EH.PostPublic(e, b.Notifier, channel, roastMessage(e.User().ID, res))
		default:
			return utils.EH.Reply(e, strings.Join([]string{
				fmt.Sprintf("🎟️ **%s** will be used for future raffles.", res.Item.Name),
				"You keep your ticket until a drawing happens.",
			}, "\n"), true)
		}
	}
}

func shoutoutMessage(from snowflake.ID, res economy.UseResult) string {
	note := "Keep crushing it! 💪"
	if res.Note != "" {
		note = "Note:      " + res.Note
	}
	return utils.FormatBox("🏅🎤 Shoutout 🎤🏅",
		fmt.Sprintf("Recipient: <@%s>", res.TargetID),
		fmt.Sprintf("From:      <@%s>", from),
		"",
		note,
	)
}

func roastMessage(from snowflake.ID, res economy.UseResult) string {
	courtesy := ""
	if res.TargetID != from {
		courtesy = fmt.Sprintf(" (courtesy of <@%s>)", from)
	}
	return fmt.Sprintf("🔥 CommitGoblin's roast for <@%s>%s:\n> %s", res.TargetID, courtesy, res.RoastLine)
}
