package teams

import (
	"github.com/afterclass/commitgoblin/goblin/economy"
	"github.com/disgoorg/disgo/discord"
)

func teamNameOption(required bool, description string) discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        "name",
		Description: description,
		Required:    required,
	}
}

var TeamLeaderboard = discord.SlashCommandCreate{
	Name:        "team-leaderboard",
	Description: "Shows the team leaderboard.",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "Type of leaderboard",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Coins (Total)", Value: string(economy.SortCoins)},
				{Name: "Check-ins (Total)", Value: string(economy.SortCheckins)},
				{Name: "Best Streak", Value: string(economy.SortStreak)},
			},
		},
	},
}

var TeamCreate = discord.SlashCommandCreate{
	Name:        "team-create",
	Description: "Creates a new team.",
	Options: []discord.ApplicationCommandOption{
		teamNameOption(true, "Name of the team"),
		discord.ApplicationCommandOptionString{
			Name:        "description",
			Description: "Short description",
			Required:    false,
		},
	},
}

var TeamJoin = discord.SlashCommandCreate{
	Name:        "team-join",
	Description: "Join an existing team.",
	Options:     []discord.ApplicationCommandOption{teamNameOption(true, "Name of the team")},
}

var TeamLeave = discord.SlashCommandCreate{
	Name:        "team-leave",
	Description: "Leave a team.",
	Options:     []discord.ApplicationCommandOption{teamNameOption(true, "Name of the team")},
}

var TeamInfo = discord.SlashCommandCreate{
	Name:        "team-info",
	Description: "Shows info about a team or your team.",
	Options:     []discord.ApplicationCommandOption{teamNameOption(false, "Name of the team (optional)")},
}

var TeamList = discord.SlashCommandCreate{
	Name:        "team-list",
	Description: "Shows an overview of all teams.",
}

var TeamRename = discord.SlashCommandCreate{
	Name:        "team-rename",
	Description: "Rename a team (creator only).",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "old_name",
			Description: "Current name of the team",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "new_name",
			Description: "New name of the team",
			Required:    true,
		},
	},
}

var TeamSetDescription = discord.SlashCommandCreate{
	Name:        "team-set-description",
	Description: "Set description of a team (creator only).",
	Options: []discord.ApplicationCommandOption{
		teamNameOption(true, "Name of the team"),
		discord.ApplicationCommandOptionString{
			Name:        "description",
			Description: "New description",
			Required:    true,
		},
	},
}

var TeamKick = discord.SlashCommandCreate{
	Name:        "team-kick",
	Description: "Remove a member from a team (creator only).",
	Options: []discord.ApplicationCommandOption{
		teamNameOption(true, "Name of the team"),
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Member to remove",
			Required:    true,
		},
	},
}
