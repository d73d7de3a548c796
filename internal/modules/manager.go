package modules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"borgo/internal/core/domain"
	"borgo/internal/core/port"
)

// ModuleAdmin is the slice of the engine the manager module drives.
type ModuleAdmin interface {
	Modules() map[string]string
	Unload(name string) error
	Reload(factory func() []port.Module, comment string) error
}

// Manager exposes the module registry over chat: listing, unloading and
// the restart-style reload.
type Manager struct {
	engine  ModuleAdmin
	factory func() []port.Module
}

func NewManager(engine ModuleAdmin, factory func() []port.Module) *Manager {
	return &Manager{engine: engine, factory: factory}
}

func (m *Manager) Name() string {
	return "manager"
}

func (m *Manager) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "modules",
			Description: "list loaded modules",
			Handler:     m.list,
		},
		{
			Name:        "unload",
			Description: "unload a module and its commands",
			Usage:       domain.Usage{Hint: "<module>"},
			Handler:     m.unload,
		},
		{
			Name:        "reload",
			Description: "reload all modules with fresh state",
			Handler:     m.reload,
		},
	}
}

func (m *Manager) Listeners() []domain.ListenerSpec {
	return nil
}

func (m *Manager) list(_ context.Context, _ *domain.Invocation) (string, error) {
	loaded := m.engine.Modules()

	names := make([]string, 0, len(loaded))
	for name := range loaded {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("loaded modules:\n")
	for _, name := range names {
		if comment := loaded[name]; comment != "" {
			fmt.Fprintf(&b, "%s (%s)\n", name, comment)
			continue
		}
		fmt.Fprintf(&b, "%s\n", name)
	}

	return b.String(), nil
}

func (m *Manager) unload(_ context.Context, inv *domain.Invocation) (string, error) {
	name := strings.TrimSpace(inv.Text)
	if err := m.engine.Unload(name); err != nil {
		return "", err
	}

	return fmt.Sprintf("unloaded %s", name), nil
}

func (m *Manager) reload(_ context.Context, _ *domain.Invocation) (string, error) {
	if err := m.engine.Reload(m.factory, "built-in"); err != nil {
		return "", fmt.Errorf("reload finished with failures: %w", err)
	}

	return "all modules reloaded", nil
}
