package telegram

import (
	"context"

	"borgo/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// EventSink receives the mapped inbound events; in production this is the
// engine's HandleEvent.
type EventSink interface {
	HandleEvent(ctx context.Context, ev *domain.Event) error
}

// Handler maps Telegram updates onto domain events and feeds them to the
// engine. Updates are handled concurrently relative to each other.
type Handler struct {
	sink    EventSink
	ownerID int64
}

func NewHandler(sink EventSink, ownerID int64) *Handler {
	return &Handler{sink: sink, ownerID: ownerID}
}

// Handle is the bot's default update handler.
func (h *Handler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	ev := h.mapUpdate(update)
	if ev == nil {
		return
	}

	go func() {
		if err := h.sink.HandleEvent(ctx, ev); err != nil {
			// the engine only reports errors when response delivery is
			// beyond recovery, so this signals a broken transport
			log.Error().Err(err).Str("event", string(ev.Kind)).
				Msg("transport failure while handling event")
		}
	}()
}

func (h *Handler) mapUpdate(update *models.Update) *domain.Event {
	switch {
	case update.Message != nil:
		msg := update.Message
		if len(msg.NewChatMembers) > 0 || msg.LeftChatMember != nil {
			return &domain.Event{Kind: domain.EventChatAction, Message: h.mapMessage(msg)}
		}

		return &domain.Event{Kind: domain.EventMessage, Message: h.mapMessage(msg)}
	case update.EditedMessage != nil:
		return &domain.Event{Kind: domain.EventMessageEdit, Message: h.mapMessage(update.EditedMessage)}
	default:
		return nil
	}
}

func (h *Handler) mapMessage(msg *models.Message) *domain.Message {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	out := &domain.Message{
		ID:      msg.ID,
		ChatID:  msg.Chat.ID,
		Text:    text,
		RawText: text,
		ViaBot:  msg.ViaBot != nil,
	}

	if msg.From != nil {
		out.SenderID = msg.From.ID
		out.SenderName = userName(msg.From)
		out.Outgoing = msg.From.ID == h.ownerID
	}

	if msg.ReplyToMessage != nil {
		reply := msg.ReplyToMessage
		out.ReplyTo = &domain.ReplyRef{
			MessageID: reply.ID,
			Text:      reply.Text,
		}
		if reply.From != nil {
			out.ReplyTo.SenderID = reply.From.ID
		}
	}

	if len(msg.Photo) > 0 {
		out.FileID = msg.Photo[len(msg.Photo)-1].FileID
	} else if msg.Document != nil {
		out.FileID = msg.Document.FileID
	} else if msg.Voice != nil {
		out.FileID = msg.Voice.FileID
	}

	return out
}

func userName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
