package guesthandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/identity"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/interfaces/httpserver/responses"
)

// GuestHandler handles guest authentication flows.
type GuestHandler struct {
	resolver *identity.Resolver
	logger   zerolog.Logger
}

// NewGuestHandler constructs a handler instance.
func NewGuestHandler(resolver *identity.Resolver, logger zerolog.Logger) *GuestHandler {
	return &GuestHandler{resolver: resolver, logger: logger}
}

// CreateGuest handles POST /auth/guest requests. The tokens come from the
// external guest identity provider; provider outages surface as a 401 the
// client may retry, never a 500.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	tokens, err := h.resolver.ProvisionGuest(c.Request.Context())
	if err != nil {
		metrics.RecordAuthRequest("guest", "provision_failed")
		h.logger.Error().Err(err).Msg("provision guest identity")
		responses.HandleError(c, err, "failed to provision guest session")
		return
	}

	metrics.RecordAuthRequest("guest", "provisioned")
	c.JSON(http.StatusCreated, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
		"expires_in":    tokens.ExpiresIn,
	})
}
