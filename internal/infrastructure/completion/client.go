// Package completion adapts an OpenAI-compatible chat completions endpoint
// to the chat pipeline's client interface.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"resty.dev/v3"

	"chat-server/internal/domain/chat"
	"chat-server/internal/domain/conversation"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/infrastructure/observability"
	"chat-server/internal/utils/functional"
	"chat-server/internal/utils/platformerrors"
)

// Config carries the provider endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the provider's /chat/completions endpoint.
type Client struct {
	client *resty.Client
	cfg    Config
}

var _ chat.CompletionClient = (*Client)(nil)

// NewClient constructs a completion client.
func NewClient(client *resty.Client, cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &Client{client: client, cfg: cfg}
}

// Complete sends the ordered turns to the provider and returns the
// assistant reply text.
func (c *Client) Complete(ctx context.Context, turns []chat.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	ctx, span := observability.StartSpan(ctx, "completion", "completion.Complete")
	defer span.End()
	observability.AddSpanAttributes(ctx,
		attribute.String("completion.model", c.cfg.Model),
		attribute.Int("completion.turns", len(turns)),
	)

	started := time.Now()
	reply, err := c.complete(ctx, turns)
	metrics.RecordCompletion(c.cfg.Model, time.Since(started).Seconds())
	if err != nil {
		metrics.CompletionErrorsTotal.Inc()
		observability.RecordError(ctx, err)
		return "", err
	}
	return reply, nil
}

func (c *Client) complete(ctx context.Context, turns []chat.Turn) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: functional.Map(turns, toProviderMessage),
	}

	var respBody openai.ChatCompletionResponse
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&respBody)
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.cfg.APIKey))
	}

	resp, err := req.Post(c.cfg.BaseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", c.errorFromResponse(ctx, resp, "completion request failed")
	}
	if len(respBody.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion response contained no choices", nil, "d4f82a19-6b3e-4c57-9a0d-1e8c5b2f7a36")
	}

	return respBody.Choices[0].Message.Content, nil
}

// toProviderMessage maps a pipeline turn onto the provider's wire role.
func toProviderMessage(t chat.Turn) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	switch t.Role {
	case chat.RoleSystem:
		role = openai.ChatMessageRoleSystem
	case string(conversation.RoleAssistant):
		role = openai.ChatMessageRoleAssistant
	}
	return openai.ChatCompletionMessage{Role: role, Content: t.Content}
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "3476dd55-5fc0-4653-bd10-665895ecc099")
	}
	detail := strings.TrimSpace(resp.String())
	if detail == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "b8797de4-38cb-4bd9-9ae8-b9a04e70f6ab")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, fmt.Sprintf("%s: %s", message, detail), nil, "a1f46e0d-4017-4411-ac05-987946c3066d")
}
