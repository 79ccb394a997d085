// Package chat backs the support-chat widget. The shipped transport is a
// stub that echoes a canned agent reply; a real message channel can be
// substituted behind ChatTransport without touching the handlers.
package chat

import (
	"context"

	"dairyfront/models"
)

// ChatTransport delivers a user message and returns the agent's reply.
type ChatTransport interface {
	Send(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error)
}

// Greeting is the opening agent message shown when the widget is first
// opened.
const Greeting = "Hello! How can we help you today?"
