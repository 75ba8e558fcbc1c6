// Package conversation provides conversation and message models with
// owner-scoped storage operations.
package conversation

import (
	"context"
	"time"
)

// Role identifies who authored a message turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultTitle is used when a conversation is created without one.
const DefaultTitle = "New Chat"

// Conversation groups an ordered series of message turns for one user.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn inside a conversation.
type Message struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"`
	ConversationID uint      `json:"-"`
	UserID         uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Repository defines storage operations for conversations.
//
// ListByUserID returns the owner's conversations ordered by updated_at
// descending.
type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Conversation, error)
	Update(ctx context.Context, conversation *Conversation) error
	Delete(ctx context.Context, id uint) error
	Touch(ctx context.Context, id uint, at time.Time) error
}

// MessageRepository defines storage operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListByConversation(ctx context.Context, conversationID, userID uint) ([]*Message, error)
}

// NewConversation creates a conversation entity for the given owner.
func NewConversation(publicID string, userID uint, title string) *Conversation {
	now := time.Now()
	if title == "" {
		title = DefaultTitle
	}
	return &Conversation{
		PublicID:  publicID,
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewMessage creates a message entity belonging to a conversation.
func NewMessage(publicID string, conv *Conversation, role Role, content string) *Message {
	return &Message{
		PublicID:       publicID,
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}
