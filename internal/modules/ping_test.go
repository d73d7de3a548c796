package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingManifest(t *testing.T) {
	ping := NewPing()

	assert.Equal(t, "ping", ping.Name())
	assert.Empty(t, ping.Listeners())

	specs := ping.Commands()
	require.Len(t, specs, 1)
	assert.Equal(t, "ping", specs[0].Name)
	assert.Equal(t, []string{"p"}, specs[0].Aliases)

	result, err := specs[0].Handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}
