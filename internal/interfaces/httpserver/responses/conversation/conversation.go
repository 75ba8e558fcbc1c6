package conversation

import (
	"time"

	domainconv "chat-server/internal/domain/conversation"
	"chat-server/internal/utils/functional"
)

// ConversationResponse is the public shape of a conversation.
type ConversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse is the public shape of a message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse wraps a conversation listing.
type ListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

// MessagesResponse wraps a conversation's message history.
type MessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// NewConversationResponse maps a domain conversation to its response shape.
func NewConversationResponse(conv *domainconv.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        conv.PublicID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

// NewMessageResponse maps a domain message to its response shape.
func NewMessageResponse(msg *domainconv.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.PublicID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// NewListResponse maps a slice of domain conversations.
func NewListResponse(convs []*domainconv.Conversation) ListResponse {
	return ListResponse{
		Conversations: functional.Map(convs, NewConversationResponse),
	}
}

// NewMessagesResponse maps a slice of domain messages.
func NewMessagesResponse(msgs []*domainconv.Message) MessagesResponse {
	return MessagesResponse{
		Messages: functional.Map(msgs, NewMessageResponse),
	}
}
