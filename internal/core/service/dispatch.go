package service

import (
	"context"
	"runtime/debug"
	"sync"

	"borgo/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Dispatcher fans events out to every listener of their kind. Listeners
// run concurrently; the launch order follows ascending priority.
type Dispatcher struct {
	listeners *ListenerTable
}

func NewDispatcher(listeners *ListenerTable) *Dispatcher {
	return &Dispatcher{listeners: listeners}
}

// Dispatch starts one unit of work per listener of ev.Kind. A kind with no
// listeners is a no-op. With wait true the call returns once every handler
// has completed, success or failure; with wait false it returns after
// scheduling. Handler failures are logged per listener and never reach the
// caller or the sibling handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *domain.Event, wait bool) {
	snapshot := d.listeners.Snapshot(ev.Kind)
	if snapshot == nil {
		return
	}

	var wg sync.WaitGroup
	for _, l := range snapshot {
		wg.Add(1)
		started := make(chan struct{})

		go func(l *Listener) {
			defer wg.Done()
			close(started)
			d.run(ctx, l, ev)
		}(l)

		// hold the launch order to the table's priority order
		<-started
	}

	if wait {
		wg.Wait()
	}
}

func (d *Dispatcher) run(ctx context.Context, l *Listener, ev *domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", l.Module).Str("event", string(ev.Kind)).
				Interface("panic", r).Bytes("stack", debug.Stack()).
				Msg("listener panicked")
		}
	}()

	if err := l.Handler(ctx, ev); err != nil {
		log.Error().Err(err).Str("module", l.Module).Str("event", string(ev.Kind)).
			Msg("listener failed")
	}
}

// LogStat fires a stat_event carrying key, without waiting. Counters must
// never sit on anyone's critical path.
func (d *Dispatcher) LogStat(ctx context.Context, key string) {
	d.Dispatch(ctx, &domain.Event{Kind: domain.EventStat, StatKey: key}, false)
}
