package admin

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/handlers"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	GiveCoins,
	GiveItem,
}

func Register(r handler.Router, b *goblin.Bot) {
	r.Command("/admin-give-coins", handlers.Chain("admin-give-coins", b.Economy, GiveCoinsHandler(b)))
	r.Command("/admin-give-item", handlers.Chain("admin-give-item", b.Economy, GiveItemHandler(b)))
}
