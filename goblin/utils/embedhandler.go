package utils

import (
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized boxed replies for commands
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType groups error codes by how they are presented
type ErrorType int

const (
	// UserError - bad input or an action that does not apply
	UserError ErrorType = iota
	// SystemError - persistence or platform failures
	SystemError
	// NotFoundError - team, item or role missing
	NotFoundError
	// PermissionError - creator-only or admin-only actions
	PermissionError
	// BusinessLogicError - economy rules such as funds and ownership
	BusinessLogicError
)

// ClassifyError maps a coded error to its presentation group.
func ClassifyError(err error) ErrorType {
	switch errs.CodeOf(err) {
	case errs.CodeInvalidInput, errs.CodeAlreadyDone, errs.CodeAlreadyActive, errs.CodeExists:
		return UserError
	case errs.CodeNotFound:
		return NotFoundError
	case errs.CodeForbidden:
		return PermissionError
	case errs.CodeInsufficientFunds, errs.CodeNotOwned:
		return BusinessLogicError
	default:
		return SystemError
	}
}

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "⛔"
	case BusinessLogicError:
		return "💸"
	default:
		return "❌"
	}
}

// ErrorText renders err as the boxed text shown to the user. Uncoded errors
// are not shown verbatim.
func ErrorText(err error) string {
	errorType := ClassifyError(err)
	msg := errs.MessageOf(err)
	if errs.CodeOf(err) == errs.CodeUnknown {
		msg = "Something went wrong. Please try again later."
	}
	return FormatBotMessage(getErrorPrefix(errorType) + " " + msg)
}

// Reply boxes content and sends it as the interaction response.
func (h *ResponseHandler) Reply(event *handler.CommandEvent, content string, ephemeral bool) error {
	msg := discord.MessageCreate{Content: FormatBotMessage(content)}
	if ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return event.CreateMessage(msg)
}

// ReplyError sends err as an ephemeral boxed reply. Uncoded errors are logged.
func (h *ResponseHandler) ReplyError(event *handler.CommandEvent, err error) error {
	if errs.CodeOf(err) == errs.CodeUnknown {
		slog.Error("Unexpected command error",
			slog.String("type", "error"),
			slog.String("command", event.Data.CommandName()),
			slog.Any("error", err),
		)
	}
	return event.CreateMessage(discord.MessageCreate{
		Content: ErrorText(err),
		Flags:   discord.MessageFlagEphemeral,
	})
}
