// Package guestauth talks to the external identity provider's anonymous
// sign-in endpoint.
package guestauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"chat-server/internal/domain/identity"
)

// Client provisions guest identities over the provider's HTTP API.
type Client struct {
	client     *resty.Client
	baseURL    string
	serviceKey string
	timeout    time.Duration
	logger     zerolog.Logger
}

var _ identity.GuestProvider = (*Client)(nil)

// NewClient constructs a guest auth client.
func NewClient(client *resty.Client, baseURL, serviceKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		client:     client,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		serviceKey: serviceKey,
		timeout:    timeout,
		logger:     logger,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CreateGuest asks the provider to mint a fresh anonymous identity and
// returns its token set.
func (c *Client) CreateGuest(ctx context.Context) (*identity.TokenSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body tokenResponse
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetResult(&body)
	if c.serviceKey != "" {
		req.SetHeader("X-Service-Key", c.serviceKey)
	}

	resp, err := req.Post(c.baseURL + "/auth/anonymous")
	if err != nil {
		return nil, fmt.Errorf("guest auth request: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn().
			Int("status", resp.StatusCode()).
			Msg("guest auth provider rejected provisioning request")
		return nil, fmt.Errorf("guest auth provider returned status %d", resp.StatusCode())
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("guest auth provider returned empty token set")
	}

	return &identity.TokenSet{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    body.ExpiresIn,
		TokenType:    body.TokenType,
	}, nil
}
