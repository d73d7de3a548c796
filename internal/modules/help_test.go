package modules

import (
	"context"
	"testing"

	"borgo/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLister struct {
	specs []domain.CommandSpec
}

func (l *staticLister) ListCommands() []domain.CommandSpec {
	return l.specs
}

type staticPrefix string

func (p staticPrefix) Prefix() string { return string(p) }

func TestHelpRendersCatalog(t *testing.T) {
	lister := &staticLister{specs: []domain.CommandSpec{
		{Name: "ask", Description: "ask the language model", Usage: domain.Usage{Hint: "<prompt>"}},
		{Name: "ping", Description: "check that the bot is alive", Aliases: []string{"p"}},
	}}

	help := NewHelp(lister, staticPrefix("/"))

	specs := help.Commands()
	require.Len(t, specs, 1)

	out, err := specs[0].Handler(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "/ask <prompt> - ask the language model")
	assert.Contains(t, out, "/ping (/p) - check that the bot is alive")
}

func TestHelpUsesCurrentPrefix(t *testing.T) {
	lister := &staticLister{specs: []domain.CommandSpec{{Name: "ping"}}}
	help := NewHelp(lister, staticPrefix("!"))

	out, err := help.Commands()[0].Handler(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "!ping")
}
