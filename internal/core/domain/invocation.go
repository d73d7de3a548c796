package domain

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// RespondFunc delivers text for an invocation; bound by the command
// dispatcher so handlers never see the network client directly.
type RespondFunc func(ctx context.Context, inv *Invocation, text string) error

// Invocation is the per-call state bundle handed to a command handler.
// It lives for exactly one dispatch and remembers the outbound response
// message so repeated Respond calls edit instead of spamming new ones.
type Invocation struct {
	ID      uuid.UUID
	Event   *Event
	Command *CommandSpec
	// Args are the whitespace segments after the invoker token. RawArgs
	// keeps markup, Text is the plain variant; both may come from a
	// replied-to message when the command accepts reply substitution.
	Args    []string
	RawArgs string
	Text    string

	respond RespondFunc

	mu         sync.Mutex
	responseID int
}

// NewInvocation builds the context for one command dispatch.
func NewInvocation(ev *Event, cmd *CommandSpec, respond RespondFunc) *Invocation {
	id, _ := uuid.NewV4()

	return &Invocation{
		ID:      id,
		Event:   ev,
		Command: cmd,
		respond: respond,
	}
}

// Respond delivers text back to the originating chat through the bound
// responder. The first call may create a message; later calls edit it.
func (inv *Invocation) Respond(ctx context.Context, text string) error {
	return inv.respond(ctx, inv, text)
}

// ResponseID returns the outbound message id remembered for this
// invocation, or zero if nothing has been sent yet.
func (inv *Invocation) ResponseID() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	return inv.responseID
}

// SetResponseID remembers the outbound message for follow-up edits.
func (inv *Invocation) SetResponseID(id int) {
	inv.mu.Lock()
	inv.responseID = id
	inv.mu.Unlock()
}

// Responded reports whether a response message exists for this invocation.
func (inv *Invocation) Responded() bool {
	return inv.ResponseID() != 0
}
