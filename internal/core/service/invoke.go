package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"borgo/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CommandDispatcher turns self-authored prefixed messages into exactly one
// handler invocation and one formatted response.
type CommandDispatcher struct {
	commands  *CommandTable
	events    *Dispatcher
	responder *Responder
	settings  *Settings
}

func NewCommandDispatcher(commands *CommandTable, events *Dispatcher, responder *Responder,
	settings *Settings) *CommandDispatcher {
	return &CommandDispatcher{
		commands:  commands,
		events:    events,
		responder: responder,
		settings:  settings,
	}
}

// HandleMessage runs the command pipeline for one inbound message event.
// All handler and delivery failures are contained here; a returned error
// means even the secondary error notice could not be delivered, which the
// top-level run loop treats as a broken transport.
func (d *CommandDispatcher) HandleMessage(ctx context.Context, ev *domain.Event) error {
	msg := ev.Message
	prefix := d.settings.Prefix()

	if msg == nil || !msg.Outgoing || msg.ViaBot || !strings.HasPrefix(msg.Text, prefix) {
		return nil
	}

	token := domain.ParseCommand(msg.Text, prefix)
	if token == "" {
		return nil
	}

	spec, module, ok := d.commands.Resolve(token)
	if !ok {
		// not every prefixed message is a command
		return nil
	}

	l := log.With().
		Str("module", module).
		Str("command", spec.Name).
		Int64("chatId", msg.ChatID).
		Int("messageId", msg.ID).
		Logger()

	inv := domain.NewInvocation(ev, &spec, d.responder.Respond)
	inv.Text = domain.ParseCommandArgs(msg.Text, prefix)
	inv.RawArgs = domain.ParseCommandArgs(msg.RawText, prefix)

	if inv.Text == "" && spec.Usage.Hint != "" && !spec.Usage.Optional {
		if spec.Usage.AcceptsReply && msg.ReplyTo != nil && msg.ReplyTo.Text != "" {
			inv.Text = msg.ReplyTo.Text
			inv.RawArgs = msg.ReplyTo.Text
		} else {
			l.Debug().Msg("invocation missing required parameters")
			notice := fmt.Sprintf("missing parameters: %s%s %s", prefix, spec.Name, spec.Usage.Hint)

			return d.deliver(ctx, inv, notice, l)
		}
	}

	inv.Args = strings.Fields(inv.Text)

	l.Debug().Str("invocation", inv.ID.String()).Msg("invoking command handler")

	result, err := d.invoke(ctx, inv)

	var deliverErr error
	switch {
	case err != nil:
		l.Error().Err(err).Str("invocation", inv.ID.String()).Msg("command handler failed")
		deliverErr = d.deliver(ctx, inv, fmt.Sprintf("error in %s%s: %v", prefix, spec.Name, err), l)
	case result != "":
		deliverErr = d.deliver(ctx, inv, result, l)
	}

	d.events.Dispatch(ctx, &domain.Event{Kind: domain.EventCommand, Command: spec.Name, Message: msg}, false)

	return deliverErr
}

// invoke runs the handler with panic containment; a panic surfaces as an
// error carrying the stack so the user-visible report keeps the trace.
func (d *CommandDispatcher) invoke(ctx context.Context, inv *domain.Invocation) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v\n%s", r, debug.Stack())
		}
	}()

	return inv.Command.Handler(ctx, inv)
}

// deliver sends text through the responder, attempting a best-effort
// secondary notice if delivery itself fails. Only a failure of that second
// attempt escapes to the caller.
func (d *CommandDispatcher) deliver(ctx context.Context, inv *domain.Invocation, text string,
	l zerolog.Logger) error {
	err := d.responder.Respond(ctx, inv, text)
	if err == nil {
		return nil
	}

	l.Error().Err(err).Msg("failed to deliver response")

	// the secondary notice goes out as a fresh reply so it does not
	// depend on whatever made the first delivery fail
	notice := fmt.Sprintf("failed to deliver response: %v", err)
	if err := d.responder.Deliver(ctx, inv, notice, ModeReply); err != nil {
		return fmt.Errorf("delivering error notice: %w", err)
	}

	return nil
}
