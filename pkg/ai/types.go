package ai

import (
	"context"

	"github.com/noah-isme/maum-go-api/internal/models"
)

// Counselor describes a chat model that continues a counseling conversation.
// The full accumulated transcript is sent as context on every call; the
// returned string is the single reply message.
type Counselor interface {
	Reply(ctx context.Context, transcript []models.ConversationEntry, userMessage string) (string, error)
}
