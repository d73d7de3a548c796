package modules

import (
	"context"
	"fmt"
	"strings"

	"borgo/internal/core/domain"
)

// CommandLister is the slice of the engine the help module needs.
type CommandLister interface {
	ListCommands() []domain.CommandSpec
}

// Prefixer exposes the current command prefix.
type Prefixer interface {
	Prefix() string
}

// Help renders the command catalog.
type Help struct {
	lister CommandLister
	prefix Prefixer
}

func NewHelp(lister CommandLister, prefix Prefixer) *Help {
	return &Help{lister: lister, prefix: prefix}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "help",
			Description: "list available commands",
			Aliases:     []string{"h"},
			Handler:     h.help,
		},
	}
}

func (h *Help) Listeners() []domain.ListenerSpec {
	return nil
}

func (h *Help) help(_ context.Context, _ *domain.Invocation) (string, error) {
	prefix := h.prefix.Prefix()

	var b strings.Builder
	b.WriteString("available commands:\n")

	for _, spec := range h.lister.ListCommands() {
		fmt.Fprintf(&b, "%s%s", prefix, spec.Name)

		if len(spec.Aliases) > 0 {
			fmt.Fprintf(&b, " (%s%s)", prefix, strings.Join(spec.Aliases, ", "+prefix))
		}

		if spec.Usage.Hint != "" {
			fmt.Fprintf(&b, " %s", spec.Usage.Hint)
		}

		if spec.Description != "" {
			fmt.Fprintf(&b, " - %s", spec.Description)
		}

		b.WriteString("\n")
	}

	return b.String(), nil
}
