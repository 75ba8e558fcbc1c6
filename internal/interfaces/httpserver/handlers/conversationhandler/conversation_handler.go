package conversationhandler

import (
	"context"

	"chat-server/internal/domain/conversation"
	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/metrics"
	conversationrequests "chat-server/internal/interfaces/httpserver/requests/conversation"
	conversationresponses "chat-server/internal/interfaces/httpserver/responses/conversation"
	"chat-server/internal/utils/platformerrors"
)

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversationService *conversation.Service
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationService *conversation.Service) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// ListConversations lists the owner's conversations, most recently active first.
func (h *ConversationHandler) ListConversations(
	ctx context.Context,
	owner *user.User,
) (*conversationresponses.ListResponse, error) {
	convs, err := h.conversationService.List(ctx, owner)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}

	resp := conversationresponses.NewListResponse(convs)
	return &resp, nil
}

// CreateConversation creates a new conversation for the owner.
func (h *ConversationHandler) CreateConversation(
	ctx context.Context,
	ownerID uint,
	req conversationrequests.CreateConversationRequest,
) (*conversationresponses.ConversationResponse, error) {
	conv, err := h.conversationService.Create(ctx, ownerID, req.Title)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create conversation")
	}

	metrics.ConversationsCreatedTotal.Inc()
	resp := conversationresponses.NewConversationResponse(conv)
	return &resp, nil
}

// RenameConversation updates a conversation title.
func (h *ConversationHandler) RenameConversation(
	ctx context.Context,
	ownerID uint,
	conversationID string,
	req conversationrequests.RenameConversationRequest,
) (*conversationresponses.ConversationResponse, error) {
	conv, err := h.conversationService.Rename(ctx, ownerID, conversationID, req.Title)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to rename conversation")
	}

	resp := conversationresponses.NewConversationResponse(conv)
	return &resp, nil
}

// DeleteConversation removes a conversation and its messages.
func (h *ConversationHandler) DeleteConversation(
	ctx context.Context,
	ownerID uint,
	conversationID string,
) error {
	if err := h.conversationService.Delete(ctx, ownerID, conversationID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete conversation")
	}
	return nil
}

// ListMessages returns a conversation's history in chronological order.
func (h *ConversationHandler) ListMessages(
	ctx context.Context,
	ownerID uint,
	conversationID string,
) (*conversationresponses.MessagesResponse, error) {
	msgs, err := h.conversationService.Messages(ctx, ownerID, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list messages")
	}

	resp := conversationresponses.NewMessagesResponse(msgs)
	return &resp, nil
}
