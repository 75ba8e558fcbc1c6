package authhandler

import (
	"github.com/gin-gonic/gin"

	"chat-server/internal/domain/user"
	middleware "chat-server/internal/interfaces/httpserver/middlewares"
	"chat-server/internal/interfaces/httpserver/responses"
	"chat-server/internal/utils/platformerrors"
)

// GetUserFromContext returns the ensured application user from the request context.
func GetUserFromContext(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(appUserContextKey)
	if !ok || val == nil {
		return nil, false
	}
	usr, ok := val.(*user.User)
	return usr, ok && usr != nil
}

func (h *AuthHandler) ensureAppUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserFromContext(c); ok {
			c.Next()
			return
		}

		principal, ok := middleware.PrincipalFromContext(c)
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "5e1d3524-929e-4c7a-9bb7-0a8b74fa6f10")
			c.Abort()
			return
		}

		usr, err := h.userService.EnsureProfile(c.Request.Context(), principal)
		if err != nil {
			h.logger.Error().Err(err).Str("subject", principal.Subject).Msg("failed to ensure user profile from principal")
			responses.HandleError(c, err, "unable to resolve user profile")
			c.Abort()
			return
		}

		c.Set(appUserContextKey, usr)
		c.Next()
	}
}
