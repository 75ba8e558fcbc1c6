package routes

import (
	"github.com/google/wire"

	"chat-server/internal/interfaces/httpserver/routes/auth"
	v1 "chat-server/internal/interfaces/httpserver/routes/v1"
	"chat-server/internal/interfaces/httpserver/routes/v1/chat"
	"chat-server/internal/interfaces/httpserver/routes/v1/conversation"
	"chat-server/internal/interfaces/httpserver/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	v1.NewV1Route,
	chat.NewChatRoute,
	conversation.NewConversationRoute,
	users.NewUsersRoute,
)
