package auth

import (
	"github.com/gin-gonic/gin"

	"chat-server/internal/interfaces/httpserver/handlers/guesthandler"
)

// AuthRoute handles authentication routes
type AuthRoute struct {
	guestHandler *guesthandler.GuestHandler
}

// NewAuthRoute creates a new auth route
func NewAuthRoute(guestHandler *guesthandler.GuestHandler) *AuthRoute {
	return &AuthRoute{guestHandler: guestHandler}
}

// RegisterRouter registers the public auth routes
func (a *AuthRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/auth/guest", a.CreateGuest)
}

// CreateGuest provisions an anonymous identity and returns its token set.
func (a *AuthRoute) CreateGuest(c *gin.Context) {
	a.guestHandler.CreateGuest(c)
}
