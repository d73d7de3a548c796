package modules

import (
	"context"

	"borgo/internal/core/domain"
	"borgo/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Ask forwards a prompt to the text generator. It is the long-running
// handler of the built-in set: a progress response goes out first and the
// final answer edits it in place.
type Ask struct {
	generator port.TextGenerator
}

func NewAsk(generator port.TextGenerator) *Ask {
	return &Ask{generator: generator}
}

func (a *Ask) Name() string {
	return "ask"
}

func (a *Ask) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "ask",
			Description: "ask the language model",
			Usage:       domain.Usage{Hint: "<prompt>", AcceptsReply: true},
			Handler:     a.ask,
		},
	}
}

func (a *Ask) Listeners() []domain.ListenerSpec {
	return nil
}

func (a *Ask) ask(ctx context.Context, inv *domain.Invocation) (string, error) {
	if err := inv.Respond(ctx, "thinking..."); err != nil {
		log.Warn().Err(err).Str("invocation", inv.ID.String()).
			Msg("failed to send progress response")
	}

	answer, err := a.generator.Complete(ctx, inv.Text)
	if err != nil {
		return "", err
	}

	return answer, nil
}
