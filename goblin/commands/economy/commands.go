package economy

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/handlers"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	Checkin,
	Balance,
	Leaderboard,
	Shop,
	Buy,
	MyItems,
	UseItem,
}

func Register(r handler.Router, b *goblin.Bot) {
	r.Command("/checkin", handlers.Chain("checkin", b.Economy, CheckinHandler(b)))
	r.Command("/balance", handlers.Chain("balance", b.Economy, BalanceHandler(b)))
	r.Command("/leaderboard", handlers.Chain("leaderboard", b.Economy, LeaderboardHandler(b)))
	r.Command("/shop", handlers.Chain("shop", b.Economy, ShopHandler(b)))
	r.Command("/buy", handlers.Chain("buy", b.Economy, BuyHandler(b)))
	r.Command("/my-items", handlers.Chain("my-items", b.Economy, MyItemsHandler(b)))
	r.Command("/use-item", handlers.Chain("use-item", b.Economy, UseItemHandler(b)))
}
