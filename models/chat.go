package models

import "time"

// Chat message senders.
const (
	ChatSenderUser  = "user"
	ChatSenderAgent = "agent"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
