package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"dairyfront/models"
	"dairyfront/services/session"

	"github.com/google/uuid"
)

// ChatService keeps the conversation on the session and relays messages
// through the configured transport.
type ChatService interface {
	History(sess *session.Session) []models.ChatMessage
	Send(ctx context.Context, sess *session.Session, text string) ([]models.ChatMessage, error)
}

type DefaultChatService struct {
	Transport ChatTransport
	Sessions  session.Store
}

// History returns the conversation so far, seeding the greeting on first
// open.
func (s *DefaultChatService) History(sess *session.Session) []models.ChatMessage {
	if len(sess.Chat) == 0 {
		sess.Chat = []models.ChatMessage{{
			ID:        uuid.New().String(),
			Text:      Greeting,
			Sender:    models.ChatSenderAgent,
			Timestamp: time.Now(),
		}}
	}
	return sess.Chat
}

// Send appends the user message, relays it, and appends the reply.
func (s *DefaultChatService) Send(ctx context.Context, sess *session.Session, text string) ([]models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message text is required")
	}

	s.History(sess)

	userMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    models.ChatSenderUser,
		Timestamp: time.Now(),
	}
	sess.Chat = append(sess.Chat, userMsg)

	reply, err := s.Transport.Send(ctx, userMsg)
	if err != nil {
		// The user message still counts; only the reply is lost.
		if saveErr := s.Sessions.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return sess.Chat, err
	}
	sess.Chat = append(sess.Chat, reply)

	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Chat, nil
}
