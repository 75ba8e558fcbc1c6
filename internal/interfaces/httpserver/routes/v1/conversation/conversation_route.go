package conversation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-server/internal/interfaces/httpserver/handlers/authhandler"
	"chat-server/internal/interfaces/httpserver/handlers/conversationhandler"
	conversationrequests "chat-server/internal/interfaces/httpserver/requests/conversation"
	"chat-server/internal/interfaces/httpserver/responses"
	"chat-server/internal/utils/platformerrors"
)

const convPublicIDParam = "conv_public_id"

type ConversationRoute struct {
	handler     *conversationhandler.ConversationHandler
	authHandler *authhandler.AuthHandler
}

func NewConversationRoute(
	handler *conversationhandler.ConversationHandler,
	authHandler *authhandler.AuthHandler,
) *ConversationRoute {
	return &ConversationRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.GET("", route.authHandler.WithAppUserAuthChain(route.listConversations)...)
	conversations.POST("", route.authHandler.WithAppUserAuthChain(route.createConversation)...)
	conversations.POST("/:"+convPublicIDParam, route.authHandler.WithAppUserAuthChain(route.renameConversation)...)
	conversations.DELETE("/:"+convPublicIDParam, route.authHandler.WithAppUserAuthChain(route.deleteConversation)...)
	conversations.GET("/:"+convPublicIDParam+"/messages", route.authHandler.WithAppUserAuthChain(route.listMessages)...)
}

// listConversations returns the caller's conversations, most recently active first.
func (route *ConversationRoute) listConversations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	response, err := route.handler.ListConversations(ctx, user)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// createConversation creates a new conversation owned by the caller.
func (route *ConversationRoute) createConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	// an empty body is allowed, the server falls back to the default title
	var req conversationrequests.CreateConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "d1f82a64-3c7b-4e09-9a5d-6b0e2f8c1a37")
		return
	}

	response, err := route.handler.CreateConversation(ctx, user.ID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create conversation")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// renameConversation updates a conversation title.
func (route *ConversationRoute) renameConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	var req conversationrequests.RenameConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "title is required", "7a90c4e1-52d8-4b36-8f1e-c3d6a09b5e72")
		return
	}

	response, err := route.handler.RenameConversation(ctx, user.ID, reqCtx.Param(convPublicIDParam), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to rename conversation")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// deleteConversation removes a conversation and its messages.
func (route *ConversationRoute) deleteConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	if err := route.handler.DeleteConversation(ctx, user.ID, reqCtx.Param(convPublicIDParam)); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete conversation")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// listMessages returns a conversation's history in chronological order.
func (route *ConversationRoute) listMessages(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	response, err := route.handler.ListMessages(ctx, user.ID, reqCtx.Param(convPublicIDParam))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list messages")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
