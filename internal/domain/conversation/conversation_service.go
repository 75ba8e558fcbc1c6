package conversation

import (
	"context"
	"strings"
	"time"

	"chat-server/internal/domain/user"
	"chat-server/internal/utils/idgen"
	"chat-server/internal/utils/platformerrors"
)

// Config carries conversation policy knobs.
type Config struct {
	// GuestHistoryEnabled controls whether List returns persisted
	// conversations to anonymous principals. Guest conversations are
	// always persisted either way; guests track their active one
	// client-side when listing is off.
	GuestHistoryEnabled bool
}

// Service handles business logic for conversations and their messages.
type Service struct {
	repo     Repository
	messages MessageRepository
	cfg      Config
}

// NewService creates a conversation service.
func NewService(repo Repository, messages MessageRepository, cfg Config) *Service {
	return &Service{repo: repo, messages: messages, cfg: cfg}
}

// List returns the owner's conversations, most recently updated first.
// Anonymous owners get an empty list unless guest history is enabled.
func (s *Service) List(ctx context.Context, owner *user.User) ([]*Conversation, error) {
	if owner.Anonymous && !s.cfg.GuestHistoryEnabled {
		return []*Conversation{}, nil
	}

	conversations, err := s.repo.ListByUserID(ctx, owner.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, nil
}

// Create persists a new conversation for the owner. An empty title
// falls back to DefaultTitle.
func (s *Service) Create(ctx context.Context, ownerID uint, title string) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation ID")
	}

	conv := NewConversation(publicID, ownerID, strings.TrimSpace(title))
	if err := s.repo.Create(ctx, conv); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"owner profile does not exist, provision it first", err, "6e2d8b41-9f73-4c05-a1e6-5d0c3b8f7a29")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, nil
}

// GetOwned retrieves a conversation by public ID and verifies ownership.
// An owner mismatch is indistinguishable from a missing conversation.
func (s *Service) GetOwned(ctx context.Context, ownerID uint, publicID string) (*Conversation, error) {
	if !idgen.ValidateIDFormat(publicID, "conv") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "b7a94d20-3e5c-4f81-9d6b-2c0e8a5f1d47")
	}

	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "conversation not found")
	}

	if conv.UserID != ownerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "4d8f2c96-1b7a-4e53-8a0d-9e6b3f5c2a18")
	}

	return conv, nil
}

// Rename updates a conversation title after verifying ownership.
func (s *Service) Rename(ctx context.Context, ownerID uint, publicID, title string) (*Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"title must not be empty", nil, "e1c5b3a8-7d29-4f60-b4e8-0a9d6c2f8b31")
	}

	conv, err := s.GetOwned(ctx, ownerID, publicID)
	if err != nil {
		return nil, err
	}

	conv.Title = title
	conv.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to rename conversation")
	}
	return conv, nil
}

// Delete removes a conversation after verifying ownership. Messages go
// with it via cascade.
func (s *Service) Delete(ctx context.Context, ownerID uint, publicID string) error {
	conv, err := s.GetOwned(ctx, ownerID, publicID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	return nil
}

// Touch advances a conversation's updated_at so it sorts first in List.
func (s *Service) Touch(ctx context.Context, conversationID uint) error {
	if err := s.repo.Touch(ctx, conversationID, time.Now()); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to touch conversation")
	}
	return nil
}

// Messages returns the full ordered history of an owned conversation.
func (s *Service) Messages(ctx context.Context, ownerID uint, publicID string) ([]*Message, error) {
	conv, err := s.GetOwned(ctx, ownerID, publicID)
	if err != nil {
		return nil, err
	}
	return s.History(ctx, conv)
}

// History lists a conversation's messages oldest first, scoped to the owner.
func (s *Service) History(ctx context.Context, conv *Conversation) ([]*Message, error) {
	messages, err := s.messages.ListByConversation(ctx, conv.ID, conv.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}
	return messages, nil
}

// AppendMessage persists a new turn on the conversation.
func (s *Service) AppendMessage(ctx context.Context, conv *Conversation, role Role, content string) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message ID")
	}

	msg := NewMessage(publicID, conv, role, content)
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist message")
	}
	return msg, nil
}

// SetTitle persists a title change without an ownership re-check; callers
// must already hold a verified conversation. The update carries a fresh
// updated_at so it never rewinds a Touch issued after the load.
func (s *Service) SetTitle(ctx context.Context, conv *Conversation, title string) error {
	conv.Title = title
	conv.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation title")
	}
	return nil
}
