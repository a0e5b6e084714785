package system

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/handlers"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	Ping,
	Info,
	Motivate,
	Version,
}

func Register(r handler.Router, b *goblin.Bot) {
	r.Command("/ping", handlers.Chain("ping", b.Economy, PingHandler(b)))
	r.Command("/info", handlers.Chain("info", b.Economy, InfoHandler(b)))
	r.Command("/motivate", handlers.Chain("motivate", b.Economy, MotivateHandler(b)))
	r.Command("/version", handlers.Chain("version", b.Economy, VersionHandler(b)))
}
