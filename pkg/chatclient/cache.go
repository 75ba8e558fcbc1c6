package chatclient

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cache is a conversation-keyed read cache of message histories with an
// explicit snapshot/apply/commit-or-revert protocol for optimistic sends.
//
// Only one in-flight optimistic snapshot per conversation is meaningful at a
// time: applying a second optimistic send before the first resolves replaces
// the pending snapshot (last snapshot wins), so a later revert restores the
// state captured by the most recent apply.
type Cache struct {
	mu       sync.Mutex
	messages map[string][]Message
	pending  map[string]*pendingSend
}

type pendingSend struct {
	snapshot []Message
	tempID   string
	content  string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		messages: make(map[string][]Message),
		pending:  make(map[string]*pendingSend),
	}
}

// Get returns a copy of the cached history for a conversation.
func (c *Cache) Get(conversationID string) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyMessages(c.messages[conversationID])
}

// Put replaces the cached history for a conversation.
func (c *Cache) Put(conversationID string, msgs []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[conversationID] = copyMessages(msgs)
}

// Invalidate drops the cached history and any pending snapshot.
func (c *Cache) Invalidate(conversationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.messages, conversationID)
	delete(c.pending, conversationID)
}

// ApplyOptimistic snapshots the current history, appends the outbound user
// message under a temporary identifier, and returns that identifier.
func (c *Cache) ApplyOptimistic(conversationID, content string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := copyMessages(c.messages[conversationID])
	tempID := "temp_" + uuid.NewString()

	c.messages[conversationID] = append(copyMessages(snapshot), Message{
		ID:        tempID,
		Role:      "user",
		Content:   content,
		CreatedAt: time.Now(),
	})
	c.pending[conversationID] = &pendingSend{
		snapshot: snapshot,
		tempID:   tempID,
		content:  content,
	}

	return tempID
}

// Commit replaces the cached history with the authoritative server rows and
// clears the pending snapshot. The temporary record disappears with it.
func (c *Cache) Commit(conversationID string, authoritative []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[conversationID] = copyMessages(authoritative)
	delete(c.pending, conversationID)
}

// Revert restores the pre-optimistic snapshot and returns the outbound text
// so the caller can hand it back to the compose field.
func (c *Cache) Revert(conversationID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[conversationID]
	if !ok {
		return "", false
	}
	c.messages[conversationID] = p.snapshot
	delete(c.pending, conversationID)
	return p.content, true
}

func copyMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
