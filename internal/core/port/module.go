package port

import "borgo/internal/core/domain"

// Module is a pluggable unit of feature code. A module declares its
// surface as an explicit manifest: the engine reads Commands and Listeners
// exactly once, at load time.
type Module interface {
	// Name is the unique identity key of the module.
	Name() string
	// Commands returns the command manifest. May be empty.
	Commands() []domain.CommandSpec
	// Listeners returns the event subscription manifest. May be empty.
	Listeners() []domain.ListenerSpec
}
