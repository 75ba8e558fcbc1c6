// Package chat runs the message pipeline: persist the user turn, collect
// history, call the completion provider, persist the assistant turn.
package chat

import (
	"context"
	"strings"

	"chat-server/internal/domain/conversation"
	"chat-server/internal/utils/functional"
	"chat-server/internal/utils/platformerrors"
	"chat-server/internal/utils/stringutils"
)

// RoleSystem is the completion-provider role carrying the fixed system
// instruction. It never appears on persisted messages.
const RoleSystem = "system"

const autoTitleMaxLen = 30

// Turn is one entry of a completion request.
type Turn struct {
	Role    string
	Content string
}

// CompletionClient produces an assistant reply for an ordered list of turns.
type CompletionClient interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Transactor runs fn atomically; repositories called through the fn's
// context share one transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config carries pipeline configuration.
type Config struct {
	SystemInstruction string
}

// Service orchestrates the send pipeline.
type Service struct {
	conversations *conversation.Service
	completion    CompletionClient
	tx            Transactor
	cfg           Config
	locks         *keyedMutex
}

// NewService creates a chat service.
func NewService(conversations *conversation.Service, completion CompletionClient, tx Transactor, cfg Config) *Service {
	return &Service{
		conversations: conversations,
		completion:    completion,
		tx:            tx,
		cfg:           cfg,
		locks:         newKeyedMutex(),
	}
}

// Send appends a user turn to the conversation, obtains the assistant
// reply, persists it, and returns it.
//
// The user turn is durable before the provider is called and is never
// rolled back: a provider failure returns an external error while the
// user message stays persisted, so a retry appends a fresh turn on top.
// Sends on the same conversation are serialized in-process.
func (s *Service) Send(ctx context.Context, ownerID uint, convPublicID, content string) (*conversation.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message content must not be empty", nil, "f82a4c61-0d3b-4e97-a5c2-7b9e1d6f3a50")
	}

	unlock := s.locks.Lock(convPublicID)
	defer unlock()

	conv, err := s.conversations.GetOwned(ctx, ownerID, convPublicID)
	if err != nil {
		return nil, err
	}

	if _, err := s.conversations.AppendMessage(ctx, conv, conversation.RoleUser, content); err != nil {
		return nil, err
	}

	history, err := s.conversations.History(ctx, conv)
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(history)+1)
	if s.cfg.SystemInstruction != "" {
		turns = append(turns, Turn{Role: RoleSystem, Content: s.cfg.SystemInstruction})
	}
	turns = append(turns, functional.Map(history, func(m *conversation.Message) Turn {
		return Turn{Role: string(m.Role), Content: m.Content}
	})...)

	reply, err := s.completion.Complete(ctx, turns)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"assistant unavailable, user message was saved", err, "2b6e9d43-8a1f-4c70-b5d8-0f3a7e2c9b64")
	}

	// The assistant turn, the activity touch, and a possible auto-title
	// commit together; the user turn above stays either way.
	var assistant *conversation.Message
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		assistant, err = s.conversations.AppendMessage(ctx, conv, conversation.RoleAssistant, reply)
		if err != nil {
			return err
		}

		if err := s.conversations.Touch(ctx, conv.ID); err != nil {
			return err
		}

		// First exchange on a default-titled conversation names it after
		// the opening user message.
		if conv.Title == conversation.DefaultTitle && len(history) == 1 {
			if title := stringutils.GenerateTitle(content, autoTitleMaxLen); title != "" {
				if err := s.conversations.SetTitle(ctx, conv, title); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assistant, nil
}
