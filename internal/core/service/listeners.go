package service

import (
	"sort"
	"sync"

	"borgo/internal/core/domain"
)

// Listener is one live subscription in the listener table. Identity of the
// pointer is what Unregister removes by.
type Listener struct {
	Module   string
	Kind     domain.EventKind
	Priority int
	Handler  domain.EventHandlerFunc
}

// ListenerTable maps event kinds to priority-ordered listener lists. Lists
// stay sorted by ascending priority at all times; equal priorities keep
// registration order. A module may hold any number of listeners per kind.
type ListenerTable struct {
	mu     sync.RWMutex
	byKind map[domain.EventKind][]*Listener
}

func NewListenerTable() *ListenerTable {
	return &ListenerTable{byKind: make(map[domain.EventKind][]*Listener)}
}

// Register inserts a listener at its sorted position and returns the
// record for later removal by identity. A zero priority stands for
// DefaultPriority; negative priorities sort before every positive one.
func (t *ListenerTable) Register(module string, spec domain.ListenerSpec) *Listener {
	priority := spec.Priority
	if priority == 0 {
		priority = domain.DefaultPriority
	}

	l := &Listener{
		Module:   module,
		Kind:     spec.Kind,
		Priority: priority,
		Handler:  spec.Handler,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.byKind[spec.Kind]
	// first index with a strictly higher priority keeps insertion stable
	i := sort.Search(len(list), func(i int) bool { return list[i].Priority > priority })

	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = l
	t.byKind[spec.Kind] = list

	return l
}

// Unregister removes a listener by identity, pruning the kind entry when
// its list becomes empty.
func (t *ListenerTable) Unregister(l *Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remove(l)
}

// UnregisterAll removes every listener owned by module across all kinds.
func (t *ListenerTable) UnregisterAll(module string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// collect first: remove shifts the lists underneath an iteration
	var owned []*Listener
	for _, list := range t.byKind {
		for _, l := range list {
			if l.Module == module {
				owned = append(owned, l)
			}
		}
	}

	for _, l := range owned {
		t.remove(l)
	}
}

func (t *ListenerTable) remove(l *Listener) {
	list := t.byKind[l.Kind]
	for i, cur := range list {
		if cur == l {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}

	if len(list) == 0 {
		delete(t.byKind, l.Kind)
		return
	}

	t.byKind[l.Kind] = list
}

// Snapshot returns a consistent copy of the listener list for kind, so a
// dispatch in flight never observes a concurrent load or unload.
func (t *ListenerTable) Snapshot(kind domain.EventKind) []*Listener {
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := t.byKind[kind]
	if len(list) == 0 {
		return nil
	}

	out := make([]*Listener, len(list))
	copy(out, list)

	return out
}
