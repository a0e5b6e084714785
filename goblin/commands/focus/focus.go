package focus

import (
	"context"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy/focus"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

func intPtr(v int) *int { return &v }

var Focus = discord.SlashCommandCreate{
	Name:        "focus",
	Description: "Start a focus session.",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "duration",
			Description: "Duration in minutes (5-180)",
			Required:    true,
			MinValue:    intPtr(config.FocusMinMinutes),
			MaxValue:    intPtr(config.FocusMaxMinutes),
		},
	},
}

var FocusStop = discord.SlashCommandCreate{
	Name:        "focus-stop",
	Description: "Stop your current focus/Pomodoro session.",
}

var Pomodoro = discord.SlashCommandCreate{
	Name:        "pomodoro",
	Description: "Start a Pomodoro session.",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "work_minutes",
			Description: "Focus time per round (default 25)",
			Required:    false,
			MinValue:    intPtr(config.PomodoroMinWork),
			MaxValue:    intPtr(config.PomodoroMaxWork),
		},
		discord.ApplicationCommandOptionInt{
			Name:        "break_minutes",
			Description: "Break per round (default 5)",
			Required:    false,
			MinValue:    intPtr(config.PomodoroMinBreak),
			MaxValue:    intPtr(config.PomodoroMaxBreak),
		},
		discord.ApplicationCommandOptionInt{
			Name:        "rounds",
			Description: "Number of rounds (default 4)",
			Required:    false,
			MinValue:    intPtr(config.PomodoroMinRounds),
			MaxValue:    intPtr(config.PomodoroMaxRounds),
		},
	},
}

var FocusStatus = discord.SlashCommandCreate{
	Name:        "focus-status",
	Description: "Shows who is currently in a focus session.",
}

var errServerOnly = errs.New(errs.CodeInvalidInput, "Focus sessions only work in a server channel.")

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func intOption(e *handler.CommandEvent, name string, def int) int {
	if v, ok := e.SlashCommandInteractionData().OptInt(name); ok {
		return v
	}
	return def
}

func FocusHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.ReplyError(e, errServerOnly)
		}

		minutes := clamp(e.SlashCommandInteractionData().Int("duration"), config.FocusMinMinutes, config.FocusMaxMinutes)
		channel := b.AnnounceChannel(e.ChannelID())
		if err := b.Scheduler.StartFocus(e.User().ID, *guildID, channel, minutes); err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return utils.EH.PostPublic(e, b.Notifier, channel,
			fmt.Sprintf("🧠 <@%s> started a focus session for **%d minutes**. You got this!", e.User().ID, minutes))
	}
}

func FocusStopHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Scheduler.Stop(e.User().ID) {
			return utils.EH.Reply(e, "ℹ️ You currently have no active focus or Pomodoro session.", true)
		}
		return utils.EH.Reply(e, "⏹️ Your active focus/Pomodoro session has been stopped.", true)
	}
}

func PomodoroHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.ReplyError(e, errs.New(errs.CodeInvalidInput, "Pomodoro sessions only work in a server channel."))
		}

		work := clamp(intOption(e, "work_minutes", config.PomodoroDefaultWork), config.PomodoroMinWork, config.PomodoroMaxWork)
		pause := clamp(intOption(e, "break_minutes", config.PomodoroDefaultBreak), config.PomodoroMinBreak, config.PomodoroMaxBreak)
		rounds := clamp(intOption(e, "rounds", config.PomodoroDefaultRounds), config.PomodoroMinRounds, config.PomodoroMaxRounds)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout/2)
		defer cancel()

		channel := b.AnnounceChannel(e.ChannelID())
		if err := b.Scheduler.StartPomodoro(ctx, e.User().ID, *guildID, channel, work, pause, rounds); err != nil {
			return utils.EH.ReplyError(e, err)
		}
		return utils.EH.PostPublic(e, b.Notifier, channel,
			fmt.Sprintf("🍅 Pomodoro session for <@%s> started: **%d rounds** of **%d min focus** + **%d min break**.",
				e.User().ID, rounds, work, pause))
	}
}

func FocusStatusHandler(b *goblin.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.ReplyError(e, errs.New(errs.CodeInvalidInput, "This command only works in a server."))
		}
		return utils.EH.PostPublic(e, b.Notifier, b.AnnounceChannel(e.ChannelID()),
			statusMessage(b.Scheduler.ListActive(*guildID)))
	}
}

func statusMessage(sessions []focus.ActiveSession) string {
	if len(sessions) == 0 {
		return "📚 Nobody is currently in a focus or Pomodoro session."
	}
	lines := []string{"📚 **Active focus/Pomodoro sessions:**", ""}
	for _, s := range sessions {
		label := "Focus"
		if s.Kind == focus.KindPomodoro {
			label = "Pomodoro"
		}
		lines = append(lines, fmt.Sprintf("• <@%s>: %s since <t:%d:R>", s.UserID, label, s.StartedAt.Unix()))
	}
	return strings.Join(lines, "\n")
}
