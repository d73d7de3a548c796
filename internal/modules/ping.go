package modules

import (
	"context"

	"borgo/internal/core/domain"
)

// Ping answers the canonical liveness check.
type Ping struct{}

func NewPing() *Ping {
	return &Ping{}
}

func (p *Ping) Name() string {
	return "ping"
}

func (p *Ping) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "ping",
			Description: "check that the bot is alive",
			Aliases:     []string{"p"},
			Handler: func(_ context.Context, _ *domain.Invocation) (string, error) {
				return "pong", nil
			},
		},
	}
}

func (p *Ping) Listeners() []domain.ListenerSpec {
	return nil
}
