package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/identity"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/interfaces/httpserver/responses"
	"chat-server/internal/utils/platformerrors"
)

const principalContextKey = "principal"

// AuthMiddleware resolves the bearer token into a principal. Requests that
// resolve to no principal get the same 401 regardless of whether the token
// was missing, malformed, expired, or signed by an unknown key.
func AuthMiddleware(resolver *identity.Resolver, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		principal := resolver.Resolve(c.Request.Context(), token)

		if !principal.IsAuthenticated() {
			metrics.RecordAuthRequest("session", "rejected")
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "9c4b27e5-1d6a-4f02-8c3e-7b5a90d1e846")
			c.Abort()
			return
		}

		if principal.Kind == identity.PrincipalGuest {
			metrics.RecordAuthRequest("guest", "accepted")
		} else {
			metrics.RecordAuthRequest("session", "accepted")
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (identity.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return identity.Principal{}, false
	}
	principal, ok := val.(identity.Principal)
	return principal, ok && principal.IsAuthenticated()
}

func setPrincipal(c *gin.Context, principal identity.Principal) {
	c.Set(principalContextKey, principal)
	if principal.Subject != "" {
		c.Request.Header.Set("X-User-Subject", principal.Subject)
		c.Writer.Header().Set("X-User-Subject", principal.Subject)
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
