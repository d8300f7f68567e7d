package llm

import (
	"context"
	"io"

	"boutique/internal/models"
)

// ChatProvider opens a streaming completion for a transcript. The returned
// body is the raw server-sent-event byte stream; the caller owns decoding
// and must Close it. Errors (including non-success statuses) are
// connectivity failures from the conversation's point of view.
type ChatProvider interface {
	StreamChat(ctx context.Context, messages []models.Message) (io.ReadCloser, error)
}
