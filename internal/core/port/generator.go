package port

import "context"

type TextGenerator interface {
	// Complete generates a response to a single prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}
