package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"borgo/internal/core/domain"
	"borgo/internal/core/port"

	"github.com/rs/zerolog/log"
)

type loadedModule struct {
	module    port.Module
	comment   string
	listeners []*Listener
}

// Engine owns the module registry and wires the command table, listener
// table, dispatchers and responder together. Loads and unloads are
// serialized against each other; dispatch lookups read consistent
// snapshots from the tables' own locks.
type Engine struct {
	Commands  *CommandTable
	Listeners *ListenerTable
	Events    *Dispatcher
	Responder *Responder
	Settings  *Settings
	Messenger port.Messenger
	Store     port.Store

	commandDispatcher *CommandDispatcher

	mu      sync.Mutex
	modules map[string]*loadedModule
}

func NewEngine(messenger port.Messenger, store port.Store) *Engine {
	settings := NewSettings()
	commands := NewCommandTable()
	listeners := NewListenerTable()
	events := NewDispatcher(listeners)
	responder := NewResponder(messenger, settings)

	return &Engine{
		Commands:          commands,
		Listeners:         listeners,
		Events:            events,
		Responder:         responder,
		Settings:          settings,
		Messenger:         messenger,
		Store:             store,
		commandDispatcher: NewCommandDispatcher(commands, events, responder, settings),
		modules:           make(map[string]*loadedModule),
	}
}

// Load registers a module's command and listener manifests. A name held by
// a live module is a conflict, never a silent replace. If registration
// fails partway, everything this call registered is removed again before
// the error is returned.
func (e *Engine) Load(m port.Module, comment string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.load(m, comment)
}

func (e *Engine) load(m port.Module, comment string) error {
	name := m.Name()
	if name == "" {
		return domain.ErrEmptyModuleName
	}

	if _, ok := e.modules[name]; ok {
		return &domain.ModuleConflictError{Name: name}
	}

	for _, spec := range m.Commands() {
		if err := e.Commands.Register(name, spec); err != nil {
			e.Commands.Unregister(name)
			return fmt.Errorf("loading module %q: %w", name, err)
		}
	}

	lm := &loadedModule{module: m, comment: comment}
	for _, spec := range m.Listeners() {
		lm.listeners = append(lm.listeners, e.Listeners.Register(name, spec))
	}

	e.modules[name] = lm

	log.Info().Str("module", name).Str("comment", comment).Msg("loaded module")
	e.Events.Dispatch(context.Background(), &domain.Event{Kind: domain.EventLoad, Module: name}, false)

	return nil
}

// Unload removes a module and purges every command and listener entry it
// owns, leaving no dangling references.
func (e *Engine) Unload(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.unload(name)
}

func (e *Engine) unload(name string) error {
	lm, ok := e.modules[name]
	if !ok {
		return fmt.Errorf("unloading %q: %w", name, domain.ErrModuleNotFound)
	}

	e.Commands.Unregister(name)
	for _, l := range lm.listeners {
		e.Listeners.Unregister(l)
	}
	delete(e.modules, name)

	log.Info().Str("module", name).Msg("unloaded module")

	return nil
}

// LoadAll loads every module in mods, continuing past individual failures.
// The errors of failed loads are reported joined.
func (e *Engine) LoadAll(mods []port.Module, comment string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.loadAll(mods, comment)
}

func (e *Engine) loadAll(mods []port.Module, comment string) error {
	var errs []error
	for _, m := range mods {
		if err := e.load(m, comment); err != nil {
			log.Error().Err(err).Str("module", m.Name()).Msg("failed to load module")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Reload unloads every live module and loads the fresh instances the
// factory produces. It is the restart-equivalent of hot code reload:
// afterwards, dispatch runs against fresh handler state.
func (e *Engine) Reload(factory func() []port.Module, comment string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name := range e.modules {
		if err := e.unload(name); err != nil {
			return err
		}
	}

	return e.loadAll(factory(), comment)
}

// Modules returns the loaded module names with their comments.
func (e *Engine) Modules() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]string, len(e.modules))
	for name, lm := range e.modules {
		out[name] = lm.comment
	}

	return out
}

// ListCommands exposes the command catalog to modules that render help.
func (e *Engine) ListCommands() []domain.CommandSpec {
	return e.Commands.List()
}

// HandleEvent is the inbound entry point: fan the event out to its
// listeners, then run the command pipeline for plain messages. The only
// error that can come back is a dead-transport failure from the command
// dispatcher's last-resort delivery path.
func (e *Engine) HandleEvent(ctx context.Context, ev *domain.Event) error {
	e.Events.Dispatch(ctx, ev, true)

	if ev.Kind == domain.EventMessage {
		return e.commandDispatcher.HandleMessage(ctx, ev)
	}

	return nil
}

// Start announces the engine to its modules once everything is loaded.
func (e *Engine) Start(ctx context.Context) {
	e.Events.Dispatch(ctx, &domain.Event{Kind: domain.EventStart}, true)
}

// Stop flushes module state through a waited stop event; the caller closes
// shared resources afterwards and then fires Stopped.
func (e *Engine) Stop(ctx context.Context) {
	e.Events.Dispatch(ctx, &domain.Event{Kind: domain.EventStop}, true)
}

// Stopped informs modules that teardown finished, fire-and-forget.
func (e *Engine) Stopped(ctx context.Context) {
	e.Events.Dispatch(ctx, &domain.Event{Kind: domain.EventStopped}, false)
}
