package port

import "context"

// ParseMode selects the markup flavor of outbound text.
type ParseMode string

const (
	ParsePlain    ParseMode = ""
	ParseMarkdown ParseMode = "markdown"
	ParseHTML     ParseMode = "html"
)

// SendOptions carries per-message delivery flags.
type SendOptions struct {
	ParseMode      ParseMode
	DisablePreview bool
	// ReplyTo links the new message to an existing one when non-zero.
	ReplyTo int
}

// Messenger is the outbound surface of the messaging network. The engine
// never touches the wire client directly.
type Messenger interface {
	// Send posts a new message and returns its id.
	Send(ctx context.Context, chatID int64, text string, opts SendOptions) (int, error)
	// Edit replaces the text of an existing message.
	Edit(ctx context.Context, chatID int64, messageID int, text string, opts SendOptions) error
	// Delete removes a message.
	Delete(ctx context.Context, chatID int64, messageID int) error
	// DownloadMedia fetches the attached file of a message by file id.
	DownloadMedia(ctx context.Context, fileID string) ([]byte, error)
}
