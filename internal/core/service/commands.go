package service

import (
	"sort"
	"sync"

	"borgo/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type commandRecord struct {
	spec   domain.CommandSpec
	module string
}

// CommandTable maps command names and aliases to a single canonical record.
// Every trigger resolves to exactly one command; registration is
// all-or-nothing across a command's name and aliases.
type CommandTable struct {
	mu       sync.RWMutex
	triggers map[string]*commandRecord
}

func NewCommandTable() *CommandTable {
	return &CommandTable{triggers: make(map[string]*commandRecord)}
}

// Register inserts a command's name and all its aliases atomically. On any
// collision the whole registration is rolled back, including aliases
// already inserted during this call.
func (t *CommandTable) Register(module string, spec domain.CommandSpec) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.triggers[spec.Name]; ok {
		return &domain.CommandConflictError{
			Existing: existing.spec.Name,
			New:      spec.Name,
			Trigger:  spec.Name,
		}
	}

	rec := &commandRecord{spec: spec, module: module}

	inserted := []string{spec.Name}
	t.triggers[spec.Name] = rec

	for _, alias := range spec.Aliases {
		if existing, ok := t.triggers[alias]; ok {
			for _, trigger := range inserted {
				delete(t.triggers, trigger)
			}

			return &domain.CommandConflictError{
				Existing: existing.spec.Name,
				New:      spec.Name,
				Trigger:  alias,
				IsAlias:  true,
			}
		}

		t.triggers[alias] = rec
		inserted = append(inserted, alias)
	}

	log.Info().Str("module", module).Str("command", spec.Name).
		Strs("aliases", spec.Aliases).Msg("registered command")

	return nil
}

// Resolve looks up a command by name or alias.
func (t *CommandTable) Resolve(trigger string) (domain.CommandSpec, string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.triggers[trigger]
	if !ok {
		return domain.CommandSpec{}, "", false
	}

	return rec.spec, rec.module, true
}

// Unregister removes every command and alias owned by module in one pass.
func (t *CommandTable) Unregister(module string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for trigger, rec := range t.triggers {
		if rec.module == module {
			delete(t.triggers, trigger)
		}
	}
}

// List returns the canonical command specs, sorted by name.
func (t *CommandTable) List() []domain.CommandSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var specs []domain.CommandSpec
	for trigger, rec := range t.triggers {
		if trigger == rec.spec.Name {
			specs = append(specs, rec.spec)
		}
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	return specs
}
