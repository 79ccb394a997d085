package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairyfront/models"
	"dairyfront/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	sessions map[string]*session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*session.Session)}
}

func (s *memStore) Create(ctx context.Context) (*session.Session, error) {
	sess := &session.Session{ID: "chat-session"}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *memStore) Get(ctx context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *memStore) Save(ctx context.Context, sess *session.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type failingTransport struct{}

func (failingTransport) Send(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	return models.ChatMessage{}, errors.New("transport down")
}

func newChatService() (*DefaultChatService, *session.Session) {
	store := newMemStore()
	sess, _ := store.Create(context.Background())
	return &DefaultChatService{Transport: &EchoTransport{}, Sessions: store}, sess
}

func TestHistory_SeedsGreetingOnce(t *testing.T) {
	svc, sess := newChatService()

	history := svc.History(sess)
	require.Len(t, history, 1)
	assert.Equal(t, Greeting, history[0].Text)
	assert.Equal(t, models.ChatSenderAgent, history[0].Sender)

	// A second open does not add another greeting.
	assert.Len(t, svc.History(sess), 1)
}

func TestSend_AppendsUserMessageAndReply(t *testing.T) {
	svc, sess := newChatService()

	history, err := svc.Send(context.Background(), sess, "Where is my delivery?")
	require.NoError(t, err)

	require.Len(t, history, 3) // greeting, user message, reply
	assert.Equal(t, models.ChatSenderUser, history[1].Sender)
	assert.Equal(t, "Where is my delivery?", history[1].Text)
	assert.Equal(t, models.ChatSenderAgent, history[2].Sender)
	assert.Equal(t, cannedReply, history[2].Text)
}

func TestSend_RejectsBlankText(t *testing.T) {
	svc, sess := newChatService()

	_, err := svc.Send(context.Background(), sess, "   ")
	assert.Error(t, err)
	// Nothing besides the greeting was recorded.
	assert.Empty(t, sess.Chat)
}

func TestSend_KeepsUserMessageWhenTransportFails(t *testing.T) {
	store := newMemStore()
	sess, _ := store.Create(context.Background())
	svc := &DefaultChatService{Transport: failingTransport{}, Sessions: store}

	history, err := svc.Send(context.Background(), sess, "hello")
	require.Error(t, err)

	require.Len(t, history, 2) // greeting plus the user message
	assert.Equal(t, "hello", history[1].Text)
}

func TestSend_CancelledContext(t *testing.T) {
	store := newMemStore()
	sess, _ := store.Create(context.Background())
	svc := &DefaultChatService{
		Transport: &EchoTransport{Delay: time.Second},
		Sessions:  store,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Send(ctx, sess, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
