package domain

import "context"

// EventKind tags a category of occurrence flowing through the dispatcher.
// The vocabulary is fixed but extensible: modules may dispatch custom kinds.
type EventKind string

const (
	EventMessage     EventKind = "message"
	EventMessageEdit EventKind = "message_edit"
	EventChatAction  EventKind = "chat_action"
	EventCommand     EventKind = "command"
	EventLoad        EventKind = "load"
	EventStart       EventKind = "start"
	EventStop        EventKind = "stop"
	EventStopped     EventKind = "stopped"
	EventStat        EventKind = "stat_event"
)

// ReplyRef points at the message an inbound message replies to.
type ReplyRef struct {
	MessageID int
	SenderID  int64
	Text      string
}

// Message is the network-independent shape of an inbound chat message.
type Message struct {
	ID         int
	ChatID     int64
	SenderID   int64
	SenderName string
	// Text is the parsed plain text, RawText keeps the network markup.
	Text    string
	RawText string
	ReplyTo *ReplyRef
	FileID  string
	// Outgoing is true for self-authored messages, ViaBot for messages
	// relayed through an inline bot.
	Outgoing bool
	ViaBot   bool
}

// Event is the unit fanned out to listeners.
type Event struct {
	Kind    EventKind
	Message *Message
	// Command is set on EventCommand post-events, StatKey on EventStat,
	// Module on lifecycle events.
	Command string
	StatKey string
	Module  string
}

// EventHandlerFunc is a listener callback. Errors are logged by the
// dispatcher against the owning module and never propagate to siblings.
type EventHandlerFunc func(ctx context.Context, ev *Event) error
