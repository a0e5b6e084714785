package focus

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/handlers"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	Focus,
	FocusStop,
	Pomodoro,
	FocusStatus,
}

func Register(r handler.Router, b *goblin.Bot) {
	r.Command("/focus", handlers.Chain("focus", b.Economy, FocusHandler(b)))
	r.Command("/focus-stop", handlers.Chain("focus-stop", b.Economy, FocusStopHandler(b)))
	r.Command("/pomodoro", handlers.Chain("pomodoro", b.Economy, PomodoroHandler(b)))
	r.Command("/focus-status", handlers.Chain("focus-status", b.Economy, FocusStatusHandler(b)))
}
