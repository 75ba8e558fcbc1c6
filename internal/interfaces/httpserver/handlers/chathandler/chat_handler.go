package chathandler

import (
	"context"

	"chat-server/internal/domain/chat"
	"chat-server/internal/domain/conversation"
	"chat-server/internal/infrastructure/metrics"
	chatrequests "chat-server/internal/interfaces/httpserver/requests/chat"
	conversationresponses "chat-server/internal/interfaces/httpserver/responses/conversation"
	"chat-server/internal/utils/platformerrors"
)

// ChatHandler handles the message exchange pipeline.
type ChatHandler struct {
	chatService *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage persists the user turn, runs the completion, and returns the
// assistant reply. A completion failure still leaves the user turn saved.
func (h *ChatHandler) SendMessage(
	ctx context.Context,
	ownerID uint,
	conversationID string,
	req chatrequests.SendMessageRequest,
) (*conversationresponses.MessageResponse, error) {
	reply, err := h.chatService.Send(ctx, ownerID, conversationID, req.Content)
	if err != nil {
		// the user turn is already persisted when only the completion failed
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
			metrics.RecordMessage(string(conversation.RoleUser))
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to send message")
	}

	metrics.RecordMessage(string(conversation.RoleUser))
	metrics.RecordMessage(string(conversation.RoleAssistant))
	resp := conversationresponses.NewMessageResponse(reply)
	return &resp, nil
}
