package domain

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound      = errors.New("module not found")
	ErrEmptyModuleName     = errors.New("module name must not be empty")
	ErrUnknownResponseMode = errors.New("unknown response mode")
)

// ModuleConflictError reports a load attempt for a name already held by a
// live module. The caller must unload the existing module first.
type ModuleConflictError struct {
	Name string
}

func (e *ModuleConflictError) Error() string {
	return fmt.Sprintf("module %q is already loaded", e.Name)
}

// CommandConflictError reports a name or alias collision during command
// registration. Existing and New identify both records by canonical name;
// Trigger is the colliding string and IsAlias whether it collided as an
// alias of the new command.
type CommandConflictError struct {
	Existing string
	New      string
	Trigger  string
	IsAlias  bool
}

func (e *CommandConflictError) Error() string {
	kind := "command"
	if e.IsAlias {
		kind = "alias"
	}

	return fmt.Sprintf("%s %q of %q collides with existing command %q", kind, e.Trigger, e.New, e.Existing)
}
