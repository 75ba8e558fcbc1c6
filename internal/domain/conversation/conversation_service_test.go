package conversation_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"chat-server/internal/domain/conversation"
	"chat-server/internal/domain/user"
	"chat-server/internal/utils/platformerrors"
)

// mockConversationRepository is an in-memory Repository for testing
type mockConversationRepository struct {
	byPublicID map[string]*conversation.Conversation
	nextID     uint
}

func newMockConversationRepository() *mockConversationRepository {
	return &mockConversationRepository{
		byPublicID: make(map[string]*conversation.Conversation),
		nextID:     1,
	}
}

func (m *mockConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	conv.ID = m.nextID
	m.nextID++
	copied := *conv
	m.byPublicID[conv.PublicID] = &copied
	return nil
}

func (m *mockConversationRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	if conv, ok := m.byPublicID[publicID]; ok {
		copied := *conv
		return &copied, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"conversation not found", nil, "55555555-5555-5555-5555-555555555555")
}

func (m *mockConversationRepository) ListByUserID(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var out []*conversation.Conversation
	for _, conv := range m.byPublicID {
		if conv.UserID == userID {
			copied := *conv
			out = append(out, &copied)
		}
	}
	// repository contract: most recently updated first
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *mockConversationRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	copied := *conv
	m.byPublicID[conv.PublicID] = &copied
	return nil
}

func (m *mockConversationRepository) Delete(ctx context.Context, id uint) error {
	for publicID, conv := range m.byPublicID {
		if conv.ID == id {
			delete(m.byPublicID, publicID)
			return nil
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"conversation not found", nil, "66666666-6666-6666-6666-666666666666")
}

func (m *mockConversationRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	for _, conv := range m.byPublicID {
		if conv.ID == id {
			conv.UpdatedAt = at
			return nil
		}
	}
	return nil
}

// mockMessageRepository is an in-memory MessageRepository for testing
type mockMessageRepository struct {
	messages []*conversation.Message
	nextID   uint
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *conversation.Message) error {
	m.nextID++
	msg.ID = m.nextID
	copied := *msg
	m.messages = append(m.messages, &copied)
	return nil
}

func (m *mockMessageRepository) ListByConversation(ctx context.Context, conversationID, userID uint) ([]*conversation.Message, error) {
	var out []*conversation.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID && msg.UserID == userID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newService(cfg conversation.Config) (*conversation.Service, *mockConversationRepository, *mockMessageRepository) {
	repo := newMockConversationRepository()
	messages := &mockMessageRepository{}
	return conversation.NewService(repo, messages, cfg), repo, messages
}

func TestCreate_DefaultsTitle(t *testing.T) {
	svc, _, _ := newService(conversation.Config{})

	conv, err := svc.Create(context.Background(), 1, "  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if conv.Title != conversation.DefaultTitle {
		t.Errorf("title = %q, want %q", conv.Title, conversation.DefaultTitle)
	}
	if !idHasPrefix(conv.PublicID, "conv_") {
		t.Errorf("public ID %q missing conv_ prefix", conv.PublicID)
	}
}

func TestGetOwned_OwnerMismatchLooksLikeMissing(t *testing.T) {
	svc, _, _ := newService(conversation.Config{})

	conv, err := svc.Create(context.Background(), 1, "mine")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.GetOwned(context.Background(), 2, conv.PublicID)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("foreign owner must get NotFound, got %v", err)
	}
}

func TestGetOwned_MalformedIDLooksLikeMissing(t *testing.T) {
	svc, _, _ := newService(conversation.Config{})

	_, err := svc.GetOwned(context.Background(), 1, "not-a-conversation-id")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("malformed ID must get NotFound, got %v", err)
	}
}

func TestRename_RejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newService(conversation.Config{})

	conv, err := svc.Create(context.Background(), 1, "before")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Rename(context.Background(), 1, conv.PublicID, "   ")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestList_GuestHistoryDisabled(t *testing.T) {
	svc, _, _ := newService(conversation.Config{GuestHistoryEnabled: false})

	guest := &user.User{ID: 1, Anonymous: true}
	if _, err := svc.Create(context.Background(), guest.ID, "guest chat"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	convs, err := svc.List(context.Background(), guest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(convs) != 0 {
		t.Errorf("anonymous owner got %d conversations, want 0", len(convs))
	}
}

func TestList_GuestHistoryEnabled(t *testing.T) {
	svc, _, _ := newService(conversation.Config{GuestHistoryEnabled: true})

	guest := &user.User{ID: 1, Anonymous: true}
	if _, err := svc.Create(context.Background(), guest.ID, "guest chat"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	convs, err := svc.List(context.Background(), guest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(convs) != 1 {
		t.Errorf("got %d conversations, want 1", len(convs))
	}
}

func TestList_MostRecentActivityFirst(t *testing.T) {
	svc, repo, _ := newService(conversation.Config{})

	owner := &user.User{ID: 1}
	older, err := svc.Create(context.Background(), owner.ID, "older")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner.ID, "newer"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// spread the timestamps, then activity on the older conversation
	// moves it back to the front
	repo.byPublicID[older.PublicID].UpdatedAt = time.Now().Add(-time.Hour)
	if err := svc.Touch(context.Background(), older.ID); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	convs, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("got %d conversations, want 2", len(convs))
	}
	if convs[0].PublicID != older.PublicID {
		t.Errorf("first conversation = %q, want the most recently touched one", convs[0].Title)
	}
}

func TestMessages_ScopedToOwner(t *testing.T) {
	svc, _, messages := newService(conversation.Config{})

	conv, err := svc.Create(context.Background(), 1, "chat")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AppendMessage(context.Background(), conv, conversation.RoleUser, "hello"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	// a row belonging to another user on the same conversation id must not leak
	messages.messages = append(messages.messages, &conversation.Message{
		ID: 99, PublicID: "msg_other", ConversationID: conv.ID, UserID: 2,
		Role: conversation.RoleUser, Content: "intruder",
	})

	history, err := svc.Messages(context.Background(), 1, conv.PublicID)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d messages, want 1", len(history))
	}
	if history[0].Content != "hello" {
		t.Errorf("content = %q, want %q", history[0].Content, "hello")
	}
}

func idHasPrefix(id, prefix string) bool {
	return len(id) > len(prefix) && id[:len(prefix)] == prefix
}
