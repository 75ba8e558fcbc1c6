package handlers

import (
	"github.com/google/wire"

	"chat-server/internal/interfaces/httpserver/handlers/authhandler"
	"chat-server/internal/interfaces/httpserver/handlers/chathandler"
	"chat-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"chat-server/internal/interfaces/httpserver/handlers/guesthandler"
)

// HandlerProvider provides all HTTP handlers
var HandlerProvider = wire.NewSet(
	authhandler.NewAuthHandler,
	guesthandler.NewGuestHandler,
	conversationhandler.NewConversationHandler,
	chathandler.NewChatHandler,
)
