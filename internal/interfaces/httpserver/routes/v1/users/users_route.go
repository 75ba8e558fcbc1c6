package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-server/internal/interfaces/httpserver/handlers/authhandler"
	"chat-server/internal/interfaces/httpserver/responses"
	userresponses "chat-server/internal/interfaces/httpserver/responses/user"
	"chat-server/internal/utils/platformerrors"
)

// UsersRoute handles /v1/users routes
type UsersRoute struct {
	authHandler *authhandler.AuthHandler
}

// NewUsersRoute constructs a new users route handler
func NewUsersRoute(authHandler *authhandler.AuthHandler) *UsersRoute {
	return &UsersRoute{authHandler: authHandler}
}

// RegisterRouter registers user-related routes
func (r *UsersRoute) RegisterRouter(router gin.IRouter) {
	usersGroup := router.Group("/users")
	usersGroup.GET("/me", r.authHandler.WithAppUserAuthChain(r.getMe)...)
}

// getMe returns the ensured profile of the authenticated caller. The first
// call after sign-in is what provisions the profile row.
func (r *UsersRoute) getMe(reqCtx *gin.Context) {
	user, ok := authhandler.GetUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	reqCtx.JSON(http.StatusOK, userresponses.NewProfileResponse(user))
}
