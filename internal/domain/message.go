package domain

import "time"

// Message is an anonymous note embedded in its owner's User document.
type Message struct {
	MessageID string    `json:"_id" dynamodbav:"message_id"`
	Content   string    `json:"content" dynamodbav:"content"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// SendMessageRequest is posted by anonymous senders to a public profile.
type SendMessageRequest struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"required,max=300"`
}

// AcceptMessagesRequest toggles whether the owner accepts new messages.
type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"acceptMessages" validate:"required"`
}

// MessageEvent is published when a message is delivered to a user.
type MessageEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	MessageID string    `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

const EventMessageReceived = "message.received"
