package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-server/internal/interfaces/httpserver/handlers/authhandler"
	"chat-server/internal/interfaces/httpserver/handlers/chathandler"
	chatrequests "chat-server/internal/interfaces/httpserver/requests/chat"
	"chat-server/internal/interfaces/httpserver/responses"
	"chat-server/internal/utils/platformerrors"
)

const convPublicIDParam = "conv_public_id"

type ChatRoute struct {
	handler     *chathandler.ChatHandler
	authHandler *authhandler.AuthHandler
}

func NewChatRoute(
	handler *chathandler.ChatHandler,
	authHandler *authhandler.AuthHandler,
) *ChatRoute {
	return &ChatRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.POST("/:"+convPublicIDParam+"/messages", route.authHandler.WithAppUserAuthChain(route.sendMessage)...)
}

// sendMessage appends the user turn and returns the assistant reply.
// When the completion provider fails the user turn stays persisted and the
// client receives a 502 it can surface without losing the conversation.
func (route *ChatRoute) sendMessage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	var req chatrequests.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "content is required", "4e6b1d09-8f2a-4c53-b7e1-0a9d5c3f8e26")
		return
	}

	response, err := route.handler.SendMessage(ctx, user.ID, reqCtx.Param(convPublicIDParam), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to send message")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}
