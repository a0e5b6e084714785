package teams

import (
	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/handlers"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	TeamLeaderboard,
	TeamCreate,
	TeamJoin,
	TeamLeave,
	TeamInfo,
	TeamList,
	TeamRename,
	TeamSetDescription,
	TeamKick,
}

func Register(r handler.Router, b *goblin.Bot) {
	r.Command("/team-leaderboard", handlers.Chain("team-leaderboard", b.Economy, TeamLeaderboardHandler(b)))
	r.Command("/team-create", handlers.Chain("team-create", b.Economy, TeamCreateHandler(b)))
	r.Command("/team-join", handlers.Chain("team-join", b.Economy, TeamJoinHandler(b)))
	r.Command("/team-leave", handlers.Chain("team-leave", b.Economy, TeamLeaveHandler(b)))
	r.Command("/team-info", handlers.Chain("team-info", b.Economy, TeamInfoHandler(b)))
	r.Command("/team-list", handlers.Chain("team-list", b.Economy, TeamListHandler(b)))
	r.Command("/team-rename", handlers.Chain("team-rename", b.Economy, TeamRenameHandler(b)))
	r.Command("/team-set-description", handlers.Chain("team-set-description", b.Economy, TeamSetDescriptionHandler(b)))
	r.Command("/team-kick", handlers.Chain("team-kick", b.Economy, TeamKickHandler(b)))
}
