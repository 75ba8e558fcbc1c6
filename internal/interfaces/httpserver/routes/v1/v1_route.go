package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chat-server/internal/config"
	"chat-server/internal/interfaces/httpserver/routes/v1/chat"
	"chat-server/internal/interfaces/httpserver/routes/v1/conversation"
	"chat-server/internal/interfaces/httpserver/routes/v1/users"
)

type V1Route struct {
	conversation *conversation.ConversationRoute
	chat         *chat.ChatRoute
	users        *users.UsersRoute
	cfg          *config.Config
}

func NewV1Route(
	conversation *conversation.ConversationRoute,
	chat *chat.ChatRoute,
	users *users.UsersRoute,
	cfg *config.Config,
) *V1Route {
	return &V1Route{
		conversation,
		chat,
		users,
		cfg,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.conversation.RegisterRouter(v1Router)
	v1Route.chat.RegisterRouter(v1Router)
	v1Route.users.RegisterRouter(v1Router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", v1Route.getVersion)
}

func (v1Route *V1Route) getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": v1Route.cfg.EnvReloadedAt.Format(time.RFC3339),
	})
}
