package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Ping = discord.SlashCommandCreate{
	Name:        "ping",
	Description: "Check if CommitGoblin is awake.",
}

var Info = discord.SlashCommandCreate{
	Name:        "info",
	Description: "Information about the After-Class IT server.",
}

var Motivate = discord.SlashCommandCreate{
	Name:        "motivate",
	Description: "Gives you a motivational quote.",
}

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Shows the running CommitGoblin version.",
}

func PingHandler(_ *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.Reply(e, "Pong 🏓 CommitGoblin is awake!", true)
	}
}

func InfoHandler(_ *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.Reply(e, strings.Join([]string{
			"🎓 **After-Class IT Server**",
			"",
			"Here you can after class:",
			"- continue working on projects",
			"- ask questions",
			"- build features in teams",
			"- connect with other learners",
			"",
			"Everything is **optional**, but the more often you show up, the more synergy you create. ✨",
		}, "\n"), true)
	}
}

func MotivateHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.Reply(e, b.Economy.Motivate(), true)
	}
}

func VersionHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.Reply(e, strings.Join([]string{
			"🤖 CommitGoblin",
			fmt.Sprintf("Version: %s", b.Version),
			fmt.Sprintf("Commit: %s", b.Commit),
			fmt.Sprintf("Store: %s", b.Store.Backend()),
			fmt.Sprintf("Uptime: %s", time.Since(b.StartedAt).Round(time.Second)),
		}, "\n"), true)
	}
}
