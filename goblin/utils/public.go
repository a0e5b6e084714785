package utils

import (
	"context"
	"fmt"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

// ChannelSender posts a message to a channel and reports delivery.
type ChannelSender interface {
	Send(ctx context.Context, channelID snowflake.ID, text string) bool
}

// PostPublic posts content to channelID and acknowledges ephemerally. When
// the post fails, or outside a guild, the content is returned to the user
// instead.
func (h *ResponseHandler) PostPublic(event *handler.CommandEvent, sender ChannelSender, channelID snowflake.ID, content string) error {
	formatted := FormatBotMessage(content)
	if event.GuildID() == nil || channelID == 0 || sender == nil {
		return h.Reply(event, formatted, true)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout/2)
	defer cancel()
	if sender.Send(ctx, channelID, formatted) {
		return h.Reply(event, fmt.Sprintf("📨 Posted in <#%s>.", channelID), true)
	}
	ack := FormatBotMessage("⚠️ Could not post in the bot channel, sending it here instead:")
	return h.Reply(event, ack+"\n\n"+formatted, true)
}
