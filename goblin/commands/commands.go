package commands

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/commands/admin"
	"github.com/afterclass/commitgoblin/goblin/commands/economy"
	"github.com/afterclass/commitgoblin/goblin/commands/focus"
	"github.com/afterclass/commitgoblin/goblin/commands/system"
	"github.com/afterclass/commitgoblin/goblin/commands/teams"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, admin.Commands...)
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, focus.Commands...)
	Commands = append(Commands, system.Commands...)
	Commands = append(Commands, teams.Commands...)
}

// Register mounts every command handler on r. b.Economy, b.Scheduler and
// b.Notifier must be set.
func Register(r handler.Router, b *goblin.Bot) {
	admin.Register(r, b)
	economy.Register(r, b)
	focus.Register(r, b)
	system.Register(r, b)
	teams.Register(r, b)
}
