// Package chatclient is a Go client for the chat server API. It pairs the
// HTTP client with a conversation-keyed read cache that supports optimistic
// sends with rollback.
package chatclient

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Client calls the chat server HTTP API.
type Client struct {
	client  *resty.Client
	baseURL string
	token   string
}

// New constructs a client for the given server base URL.
func New(httpClient *resty.Client, baseURL string) *Client {
	return &Client{
		client:  httpClient,
		baseURL: baseURL,
	}
}

// SetToken sets the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// TokenSet is the guest provisioning response.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Name      *string   `json:"name,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation mirrors the server's conversation shape.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message mirrors the server's message shape.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type messagesResponse struct {
	Messages []Message `json:"messages"`
}

// APIError is the server's uniform error payload.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Kind       string `json:"error"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: %s (%s, status %d)", e.Message, e.Kind, e.StatusCode)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

func (c *Client) checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("chat api request: %w", err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr == nil {
			return &APIError{StatusCode: resp.StatusCode(), Kind: "unknown", Message: resp.Status()}
		}
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}

// GuestLogin provisions an anonymous session and stores its access token.
func (c *Client) GuestLogin(ctx context.Context) (*TokenSet, error) {
	var tokens TokenSet
	resp, err := c.newRequest(ctx).
		SetResult(&tokens).
		SetError(&APIError{}).
		Post(c.baseURL + "/auth/guest")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.token = tokens.AccessToken
	return &tokens, nil
}

// Me returns the caller's profile, provisioning it on first use.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	resp, err := c.newRequest(ctx).
		SetResult(&profile).
		SetError(&APIError{}).
		Get(c.baseURL + "/v1/users/me")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListConversations returns the caller's conversations, newest activity first.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var list listResponse
	resp, err := c.newRequest(ctx).
		SetResult(&list).
		SetError(&APIError{}).
		Get(c.baseURL + "/v1/conversations")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return list.Conversations, nil
}

// CreateConversation creates a conversation, optionally titled.
func (c *Client) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	var conv Conversation
	resp, err := c.newRequest(ctx).
		SetBody(map[string]string{"title": title}).
		SetResult(&conv).
		SetError(&APIError{}).
		Post(c.baseURL + "/v1/conversations")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &conv, nil
}

// RenameConversation changes a conversation title.
func (c *Client) RenameConversation(ctx context.Context, conversationID, title string) (*Conversation, error) {
	var conv Conversation
	resp, err := c.newRequest(ctx).
		SetBody(map[string]string{"title": title}).
		SetResult(&conv).
		SetError(&APIError{}).
		Post(c.baseURL + "/v1/conversations/" + conversationID)
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	resp, err := c.newRequest(ctx).
		SetError(&APIError{}).
		Delete(c.baseURL + "/v1/conversations/" + conversationID)
	return c.checkResponse(resp, err)
}

// Messages returns a conversation's history in chronological order.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var history messagesResponse
	resp, err := c.newRequest(ctx).
		SetResult(&history).
		SetError(&APIError{}).
		Get(c.baseURL + "/v1/conversations/" + conversationID + "/messages")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return history.Messages, nil
}

// SendMessage posts a user turn and returns the assistant reply.
func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*Message, error) {
	var reply Message
	resp, err := c.newRequest(ctx).
		SetBody(map[string]string{"content": content}).
		SetResult(&reply).
		SetError(&APIError{}).
		Post(c.baseURL + "/v1/conversations/" + conversationID + "/messages")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &reply, nil
}
