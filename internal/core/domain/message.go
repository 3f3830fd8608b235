package domain

import (
	"time"
)

// Message is a chat message as relayed to the partner. The server
// stamps id, sender and timestamp; content passes through as-is.
type Message struct {
	ID        MessageID `json:"id"`
	SenderID  UserID    `json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(senderID UserID, content string) Message {
	return Message{
		ID:        NewMessageID(),
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
