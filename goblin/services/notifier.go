package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/afterclass/commitgoblin/goblin/utils"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/time/rate"
)

// MessageSender is the slice of the Discord REST API the notifier needs.
type MessageSender interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// DiscordNotifier posts boxed messages to a channel. Sends are throttled and
// never return an error: delivery failures are logged and reported as false.
type DiscordNotifier struct {
	mu      sync.RWMutex
	sender  MessageSender
	limiter *rate.Limiter
}

func NewDiscordNotifier(perSecond float64, burst int) *DiscordNotifier {
	return &DiscordNotifier{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// SetClient attaches the client once the gateway is configured.
func (n *DiscordNotifier) SetClient(client bot.Client) {
	n.SetSender(client.Rest())
}

func (n *DiscordNotifier) SetSender(sender MessageSender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sender = sender
}

func (n *DiscordNotifier) Send(ctx context.Context, channelID snowflake.ID, text string) bool {
	n.mu.RLock()
	sender := n.sender
	n.mu.RUnlock()

	if sender == nil || channelID == 0 {
		metrics.RecordNotification(false)
		return false
	}
	if err := n.limiter.Wait(ctx); err != nil {
		slog.Warn("Notification dropped",
			slog.String("type", "sys"),
			slog.String("channel_id", channelID.String()),
			slog.Any("error", err),
		)
		metrics.RecordNotification(false)
		return false
	}

	_, err := sender.CreateMessage(channelID, discord.MessageCreate{
		Content: utils.FormatBotMessage(text),
	}, rest.WithCtx(ctx))
	if err != nil {
		slog.Error("Failed to send channel message",
			slog.String("type", "error"),
			slog.String("channel_id", channelID.String()),
			slog.Any("error", err),
		)
		metrics.RecordNotification(false)
		return false
	}
	metrics.RecordNotification(true)
	return true
}
