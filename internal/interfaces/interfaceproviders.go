package interfaces

import (
	"github.com/google/wire"

	"chat-server/internal/interfaces/httpserver"
	"chat-server/internal/interfaces/httpserver/handlers"
	"chat-server/internal/interfaces/httpserver/routes"
)

var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	routes.RouteProvider,
	httpserver.NewHTTPServer,
)
