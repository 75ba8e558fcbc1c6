package chatclient

import (
	"context"
	"sync"
)

// api is the subset of Client used by Session.
type api interface {
	SendMessage(ctx context.Context, conversationID, content string) (*Message, error)
	Messages(ctx context.Context, conversationID string) ([]Message, error)
}

// Session drives the optimistic send flow: apply the user turn to the local
// cache before the round-trip, then reconcile the cache with the server
// outcome. Failed sends restore the cache and return the text to the compose
// field instead of losing it.
type Session struct {
	api   api
	cache *Cache

	mu      sync.Mutex
	compose map[string]string
}

// NewSession wires a client and cache together.
func NewSession(client *Client, cache *Cache) *Session {
	return &Session{
		api:     client,
		cache:   cache,
		compose: make(map[string]string),
	}
}

// Cache exposes the underlying read cache.
func (s *Session) Cache() *Cache {
	return s.cache
}

// Compose returns the compose-field text for a conversation.
func (s *Session) Compose(conversationID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compose[conversationID]
}

// SetCompose stores the compose-field text for a conversation.
func (s *Session) SetCompose(conversationID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compose[conversationID] = text
}

// Send applies content optimistically, posts it, and reconciles the cache.
// On success the history is refetched so the temporary record is replaced by
// authoritative rows including the assistant reply. On failure the cache is
// restored to its pre-send snapshot and the text goes back to the compose
// field.
func (s *Session) Send(ctx context.Context, conversationID, content string) ([]Message, error) {
	s.cache.ApplyOptimistic(conversationID, content)
	s.SetCompose(conversationID, "")

	reply, err := s.api.SendMessage(ctx, conversationID, content)
	if err != nil {
		if restored, ok := s.cache.Revert(conversationID); ok {
			s.SetCompose(conversationID, restored)
		}
		return s.cache.Get(conversationID), err
	}

	history, err := s.api.Messages(ctx, conversationID)
	if err != nil {
		// the send succeeded; reconcile locally rather than reverting
		restored, ok := s.cache.Revert(conversationID)
		if ok {
			local := s.cache.Get(conversationID)
			local = append(local, Message{Role: "user", Content: restored}, *reply)
			s.cache.Commit(conversationID, local)
		}
		return s.cache.Get(conversationID), nil
	}

	s.cache.Commit(conversationID, history)
	return s.cache.Get(conversationID), nil
}
