package service

import (
	"context"
	"fmt"
	"strings"

	"borgo/internal/core/domain"
	"borgo/internal/core/port"

	"github.com/rs/zerolog/log"
)

// MaxMessageLength is the network's hard cap on outbound message size.
const MaxMessageLength = 4096

const (
	truncationSuffix    = "… (truncated)"
	redactedPlaceholder = "[redacted]"
)

// Responder formats and delivers handler output: redacts configured
// secrets, truncates to the network limit and applies the response mode.
type Responder struct {
	messenger port.Messenger
	settings  *Settings
}

func NewResponder(messenger port.Messenger, settings *Settings) *Responder {
	return &Responder{messenger: messenger, settings: settings}
}

// Respond delivers text for an invocation using the configured default
// mode. Repeat calls for the same invocation edit the remembered response
// message instead of sending new ones.
func (r *Responder) Respond(ctx context.Context, inv *domain.Invocation, text string) error {
	return r.Deliver(ctx, inv, text, r.settings.Mode())
}

// Deliver is Respond with an explicit per-call mode.
func (r *Responder) Deliver(ctx context.Context, inv *domain.Invocation, text string, mode Mode) error {
	msg := inv.Event.Message
	text = r.Format(text)

	switch mode {
	case ModeEdit:
		if err := r.messenger.Edit(ctx, msg.ChatID, msg.ID, text, port.SendOptions{}); err != nil {
			return fmt.Errorf("editing trigger message: %w", err)
		}
		inv.SetResponseID(msg.ID)

		return nil
	case ModeReply:
		if inv.Responded() {
			return r.edit(ctx, inv, text)
		}

		id, err := r.messenger.Send(ctx, msg.ChatID, text, port.SendOptions{ReplyTo: msg.ID})
		if err != nil {
			return fmt.Errorf("sending reply: %w", err)
		}
		inv.SetResponseID(id)

		return nil
	case ModeRepost:
		if inv.Responded() {
			return r.edit(ctx, inv, text)
		}

		id, err := r.messenger.Send(ctx, msg.ChatID, text, port.SendOptions{ReplyTo: msg.ID})
		if err != nil {
			return fmt.Errorf("sending repost: %w", err)
		}
		inv.SetResponseID(id)

		if err := r.messenger.Delete(ctx, msg.ChatID, msg.ID); err != nil {
			// the response is already out, losing the original is cosmetic
			log.Warn().Err(err).Int64("chatId", msg.ChatID).Int("messageId", msg.ID).
				Msg("failed to delete reposted trigger message")
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownResponseMode, mode)
	}
}

func (r *Responder) edit(ctx context.Context, inv *domain.Invocation, text string) error {
	msg := inv.Event.Message
	if err := r.messenger.Edit(ctx, msg.ChatID, inv.ResponseID(), text, port.SendOptions{}); err != nil {
		return fmt.Errorf("editing response message: %w", err)
	}

	return nil
}

// Format applies redaction and truncation to outbound text. Inbound text
// is never formatted.
func (r *Responder) Format(text string) string {
	if r.settings.Redact() {
		for _, secret := range r.settings.Secrets() {
			text = strings.ReplaceAll(text, secret, redactedPlaceholder)
		}
	}

	return Truncate(text, MaxMessageLength)
}

// Truncate caps text at limit runes. Oversized input is cut so that text
// plus the truncation marker is exactly limit runes long.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	suffix := []rune(truncationSuffix)

	return string(runes[:limit-len(suffix)]) + string(suffix)
}
