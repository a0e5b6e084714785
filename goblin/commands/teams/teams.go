package teams

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
	"github.com/disgoorg/paginator"
)

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.StoreOperationTimeout)
}

func publish(b *goblin.Bot, e *handler.CommandEvent, content string) error {
	return utils.EH.PostPublic(e, b.Notifier, b.AnnounceChannel(e.ChannelID()), content)
}

func TeamLeaderboardHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		by := economy.ParseLeaderboardSort(e.SlashCommandInteractionData().String("type"))
		standings := b.Economy.TeamLeaderboard(by, config.LeaderboardSize)
		if len(standings) == 0 {
			return utils.EH.Reply(e, "No data for the team leaderboard yet. Create teams and let people join!", true)
		}
		return publish(b, e, teamLeaderboardMessage(by, standings))
	}
}

func teamLeaderboardMessage(by economy.LeaderboardSort, standings []economy.TeamStanding) string {
	title, label := "🏆 Team Leaderboard: Coins (Total)", "coins"
	switch by {
	case economy.SortCheckins:
		title, label = "📊 Team Leaderboard: Check-ins (Total)", "check-ins"
	case economy.SortStreak:
		title, label = "🔥 Team Leaderboard: Best Streak", "days streak (best member)"
	}

	lines := []string{title, ""}
	for i, t := range standings {
		lines = append(lines, fmt.Sprintf("%s **#%d** **%s**: **%d %s** (%d members)",
			utils.Medal(i+1), i+1, t.Name, t.Value(by), label, t.Members))
	}
	return strings.Join(lines, "\n")
}

func TeamCreateHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		data := e.SlashCommandInteractionData()
		team, err := b.Economy.CreateTeam(ctx, e.User().ID, data.String("name"), data.String("description"))
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, strings.Join([]string{
			fmt.Sprintf("🎉 Team **%s** has been created!", team.Name),
			fmt.Sprintf("👤 Creator: <@%s>", team.CreatedBy),
			fmt.Sprintf("📝 Description: %s", team.Description),
			fmt.Sprintf("👥 Members: <@%s>", team.CreatedBy),
		}, "\n"))
	}
}

func TeamJoinHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		team, err := b.Economy.JoinTeam(ctx, e.User().ID, e.SlashCommandInteractionData().String("name"))
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, fmt.Sprintf("✅ <@%s> joined the team **%s**!", e.User().ID, team.Name))
	}
}

func TeamLeaveHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		team, err := b.Economy.LeaveTeam(ctx, e.User().ID, e.SlashCommandInteractionData().String("name"))
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, fmt.Sprintf("👋 <@%s> left the team **%s**.", e.User().ID, team.Name))
	}
}

// TeamInfoHandler shows the named team, or the caller's only team.
func TeamInfoHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if name, ok := e.SlashCommandInteractionData().OptString("name"); ok && strings.TrimSpace(name) != "" {
			team, err := b.Economy.TeamInfo(name)
			if err != nil {
				return utils.EH.ReplyError(e, err)
			}
			return publish(b, e, teamInfoMessage(team))
		}

		mine := b.Economy.UserTeams(e.User().ID)
		switch len(mine) {
		case 0:
			return utils.EH.Reply(e, "ℹ️ You are not in any team right now. Use `/team-join` or `/team-create`.", true)
		case 1:
			return publish(b, e, teamInfoMessage(mine[0]))
		default:
			lines := []string{"ℹ️ You are in multiple teams. Please specify a team name:", ""}
			for _, t := range mine {
				lines = append(lines, fmt.Sprintf("• **%s**", t.Name))
			}
			return utils.EH.Reply(e, strings.Join(lines, "\n"), true)
		}
	}
}

func teamInfoMessage(team models.Team) string {
	preview := team.Members
	if len(preview) > config.TeamInfoMemberPreview {
		preview = preview[:config.TeamInfoMemberPreview]
	}
	mentions := make([]string, len(preview))
	for i, id := range preview {
		mentions[i] = "<@" + id + ">"
	}
	memberList := strings.Join(mentions, ", ")
	if memberList == "" {
		memberList = "none"
	}

	return strings.Join([]string{
		fmt.Sprintf("📘 **Team: %s**", team.Name),
		"",
		fmt.Sprintf("📝 Description: %s", team.Description),
		fmt.Sprintf("👤 Creator: <@%s>", team.CreatedBy),
		fmt.Sprintf("👥 Members (%d): %s", len(team.Members), memberList),
		fmt.Sprintf("🆔 ID: `%s`", team.ID),
	}, "\n")
}

func TeamListHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		teams := b.Economy.ListTeams(config.TeamListSize)
		if len(teams) == 0 {
			return utils.EH.Reply(e, "No teams have been created yet. Use `/team-create` to create one.", true)
		}

		totalPages := (len(teams) + config.TeamsPerPage - 1) / config.TeamsPerPage
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle("📋 Team overview").
					SetDescription(teamListPage(teams, page)).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Teams: %d", page+1, totalPages, len(teams)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func teamListPage(teams []models.Team, page int) string {
	start := page * config.TeamsPerPage
	end := min(start+config.TeamsPerPage, len(teams))
	if start >= end {
		return ""
	}

	var sb strings.Builder
	for _, t := range teams[start:end] {
		suffix := "s"
		if len(t.Members) == 1 {
			suffix = ""
		}
		fmt.Fprintf(&sb, "• **%s**: %d member%s\n", t.Name, len(t.Members), suffix)
	}
	return sb.String()
}

func TeamRenameHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		data := e.SlashCommandInteractionData()
		team, err := b.Economy.RenameTeam(ctx, e.User().ID, data.String("old_name"), data.String("new_name"))
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, fmt.Sprintf("✏️ Team has been renamed to **%s**.", team.Name))
	}
}

func TeamSetDescriptionHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		data := e.SlashCommandInteractionData()
		team, err := b.Economy.SetTeamDescription(ctx, e.User().ID, data.String("name"), data.String("description"))
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, fmt.Sprintf("📝 Description for **%s** updated:\n%s", team.Name, team.Description))
	}
}

func TeamKickHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := storeContext()
		defer cancel()

		data := e.SlashCommandInteractionData()
		target := data.User("member")
		team, err := b.Economy.KickFromTeam(ctx, e.User().ID, data.String("name"), target.ID)
		if err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return publish(b, e, fmt.Sprintf("🚪 <@%s> has been removed from team **%s**.", target.ID, team.Name))
	}
}
