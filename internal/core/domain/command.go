package domain

import (
	"context"
	"strings"
	"unicode"
)

// HandlerFunc is a command callback. A non-empty return string is delivered
// back through the responder; an empty string with nil error means the
// handler either responded itself or chose silence.
type HandlerFunc func(ctx context.Context, inv *Invocation) (string, error)

// Usage describes a command's argument expectations.
type Usage struct {
	// Hint is the human-readable argument placeholder, e.g. "<power>".
	Hint string
	// Optional marks the argument as not required.
	Optional bool
	// AcceptsReply lets the text of a replied-to message stand in for a
	// missing argument.
	AcceptsReply bool
}

// CommandSpec is the metadata a module declares alongside a handler. It
// travels with the handler into the command table at registration time and
// is read-only afterwards.
type CommandSpec struct {
	Name        string
	Description string
	Aliases     []string
	Usage       Usage
	Handler     HandlerFunc
}

// ListenerSpec declares one event subscription in a module manifest.
// Lower priorities run first. The zero value is reserved to mean
// DefaultPriority; a listener that must run before everything else
// registers with a negative priority.
type ListenerSpec struct {
	Kind     EventKind
	Priority int
	Handler  EventHandlerFunc
}

const DefaultPriority = 100

// ParseCommand returns the invoker token of a command line, without prefix.
func ParseCommand(text, prefix string) string {
	text = strings.TrimPrefix(text, prefix)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// ParseCommandArgs returns everything after the invoker token, trimmed. The
// separator is any whitespace, so newline-separated arguments parse the same
// as space-separated ones.
func ParseCommandArgs(text, prefix string) string {
	text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}

	return strings.TrimSpace(text[i:])
}
