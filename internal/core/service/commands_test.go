package service

import (
	"context"
	"testing"

	"borgo/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(_ context.Context, _ *domain.Invocation) (string, error) {
	return "", nil
}

func TestCommandTableRegisterAndResolve(t *testing.T) {
	table := NewCommandTable()

	err := table.Register("m", domain.CommandSpec{
		Name:    "ping",
		Aliases: []string{"p"},
		Handler: noopHandler,
	})
	require.NoError(t, err)

	spec, module, ok := table.Resolve("ping")
	require.True(t, ok)
	assert.Equal(t, "ping", spec.Name)
	assert.Equal(t, "m", module)

	spec, _, ok = table.Resolve("p")
	require.True(t, ok)
	assert.Equal(t, "ping", spec.Name)

	_, _, ok = table.Resolve("pong")
	assert.False(t, ok)
}

func TestCommandTableNameCollision(t *testing.T) {
	table := NewCommandTable()

	require.NoError(t, table.Register("a", domain.CommandSpec{Name: "ping", Handler: noopHandler}))

	err := table.Register("b", domain.CommandSpec{Name: "ping", Handler: noopHandler})
	require.Error(t, err)

	var conflict *domain.CommandConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "ping", conflict.Existing)
	assert.Equal(t, "ping", conflict.Trigger)
	assert.False(t, conflict.IsAlias)

	_, module, ok := table.Resolve("ping")
	require.True(t, ok)
	assert.Equal(t, "a", module)
}

func TestCommandTableAliasCollisionRollsBack(t *testing.T) {
	table := NewCommandTable()

	require.NoError(t, table.Register("a", domain.CommandSpec{
		Name:    "first",
		Aliases: []string{"x"},
		Handler: noopHandler,
	}))

	err := table.Register("b", domain.CommandSpec{
		Name:    "second",
		Aliases: []string{"y", "x"},
		Handler: noopHandler,
	})
	require.Error(t, err)

	var conflict *domain.CommandConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "first", conflict.Existing)
	assert.Equal(t, "second", conflict.New)
	assert.Equal(t, "x", conflict.Trigger)
	assert.True(t, conflict.IsAlias)

	// the colliding registration left no trace, including its earlier alias
	_, _, ok := table.Resolve("second")
	assert.False(t, ok)
	_, _, ok = table.Resolve("y")
	assert.False(t, ok)

	// the pre-existing alias still resolves to its original owner
	spec, _, ok := table.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, "first", spec.Name)
}

func TestCommandTableUnregister(t *testing.T) {
	table := NewCommandTable()

	require.NoError(t, table.Register("a", domain.CommandSpec{
		Name:    "one",
		Aliases: []string{"1"},
		Handler: noopHandler,
	}))
	require.NoError(t, table.Register("b", domain.CommandSpec{Name: "two", Handler: noopHandler}))

	table.Unregister("a")

	_, _, ok := table.Resolve("one")
	assert.False(t, ok)
	_, _, ok = table.Resolve("1")
	assert.False(t, ok)

	_, _, ok = table.Resolve("two")
	assert.True(t, ok)
}

func TestCommandTableList(t *testing.T) {
	table := NewCommandTable()

	require.NoError(t, table.Register("m", domain.CommandSpec{
		Name:    "zeta",
		Aliases: []string{"z"},
		Handler: noopHandler,
	}))
	require.NoError(t, table.Register("m", domain.CommandSpec{Name: "alpha", Handler: noopHandler}))

	specs := table.List()
	require.Len(t, specs, 2)
	// canonical names only, sorted, aliases folded into their record
	assert.Equal(t, "alpha", specs[0].Name)
	assert.Equal(t, "zeta", specs[1].Name)
}
