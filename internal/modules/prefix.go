package modules

import (
	"context"
	"fmt"
	"strings"

	"borgo/internal/core/domain"
)

// PrefixSettings is the slice of engine settings the prefix module mutates.
type PrefixSettings interface {
	Prefix() string
	SetPrefix(prefix string)
}

// Prefix shows and changes the command prefix at runtime.
type Prefix struct {
	settings PrefixSettings
}

func NewPrefix(settings PrefixSettings) *Prefix {
	return &Prefix{settings: settings}
}

func (p *Prefix) Name() string {
	return "prefix"
}

func (p *Prefix) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "prefix",
			Description: "show or change the command prefix",
			Usage:       domain.Usage{Hint: "<new prefix>", Optional: true},
			Handler:     p.prefix,
		},
	}
}

func (p *Prefix) Listeners() []domain.ListenerSpec {
	return nil
}

func (p *Prefix) prefix(_ context.Context, inv *domain.Invocation) (string, error) {
	if inv.Text == "" {
		return fmt.Sprintf("current prefix: %s", p.settings.Prefix()), nil
	}

	next := strings.TrimSpace(inv.Text)
	if strings.ContainsAny(next, " \t\n") {
		return "", fmt.Errorf("prefix must not contain whitespace")
	}

	p.settings.SetPrefix(next)

	return fmt.Sprintf("prefix changed to %s", next), nil
}
