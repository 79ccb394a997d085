package chat

import (
	"context"
	"time"

	"dairyfront/models"

	"github.com/google/uuid"
)

const cannedReply = "Thank you for your message. An agent will respond shortly."

// EchoTransport is the simulated agent: after a short delay it answers every
// message with the canned reply.
type EchoTransport struct {
	// Delay before the simulated agent responds.
	Delay time.Duration
}

func (t *EchoTransport) Send(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	select {
	case <-time.After(t.Delay):
	case <-ctx.Done():
		return models.ChatMessage{}, ctx.Err()
	}

	return models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      cannedReply,
		Sender:    models.ChatSenderAgent,
		Timestamp: time.Now(),
	}, nil
}
