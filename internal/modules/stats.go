package modules

import (
	"context"
	"fmt"
	"strings"

	"borgo/internal/core/domain"
	"borgo/internal/core/port"
)

// statPriority keeps counters behind every functional listener.
const statPriority = 500

// Stats counts messages, command runs and explicit stat events in the
// store and reports them on demand.
type Stats struct {
	store port.Store
}

func NewStats(store port.Store) *Stats {
	return &Stats{store: store}
}

func (s *Stats) Name() string {
	return "stats"
}

func (s *Stats) Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        "stats",
			Description: "show usage counters",
			Handler:     s.report,
		},
	}
}

func (s *Stats) Listeners() []domain.ListenerSpec {
	return []domain.ListenerSpec{
		{Kind: domain.EventMessage, Priority: statPriority, Handler: s.countMessage},
		{Kind: domain.EventCommand, Priority: statPriority, Handler: s.countCommand},
		{Kind: domain.EventStat, Priority: statPriority, Handler: s.countStat},
	}
}

func (s *Stats) countMessage(ctx context.Context, _ *domain.Event) error {
	_, err := s.store.Increment(ctx, "messages", 1)
	return err
}

func (s *Stats) countCommand(ctx context.Context, ev *domain.Event) error {
	_, err := s.store.Increment(ctx, "command/"+ev.Command, 1)
	return err
}

func (s *Stats) countStat(ctx context.Context, ev *domain.Event) error {
	if ev.StatKey == "" {
		return nil
	}

	_, err := s.store.Increment(ctx, "event/"+ev.StatKey, 1)
	return err
}

func (s *Stats) report(ctx context.Context, _ *domain.Invocation) (string, error) {
	var b strings.Builder
	b.WriteString("usage counters:\n")

	err := s.store.Iterate(ctx, func(key string, value []byte) error {
		fmt.Fprintf(&b, "%s: %s\n", key, value)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("reading counters: %w", err)
	}

	return b.String(), nil
}
