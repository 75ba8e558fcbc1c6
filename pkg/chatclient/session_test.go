package chatclient

import (
	"context"
	"errors"
	"testing"
)

type stubAPI struct {
	reply   *Message
	sendErr error
	history []Message
	histErr error

	sends int
}

func (s *stubAPI) SendMessage(ctx context.Context, conversationID, content string) (*Message, error) {
	s.sends++
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return s.reply, nil
}

func (s *stubAPI) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	if s.histErr != nil {
		return nil, s.histErr
	}
	return s.history, nil
}

func newTestSession(stub *stubAPI) *Session {
	session := NewSession(nil, NewCache())
	session.api = stub
	return session
}

func TestSessionSend_SuccessCommitsServerRows(t *testing.T) {
	stub := &stubAPI{
		reply: &Message{ID: "msg_3", Role: "assistant", Content: "hi!"},
		history: []Message{
			{ID: "msg_1", Role: "user", Content: "m1"},
			{ID: "msg_2", Role: "user", Content: "hello"},
			{ID: "msg_3", Role: "assistant", Content: "hi!"},
		},
	}
	session := newTestSession(stub)
	session.Cache().Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})

	msgs, err := session.Send(context.Background(), "conv_1", "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3 authoritative rows", len(msgs))
	}
	if msgs[2].ID != "msg_3" {
		t.Errorf("last row = %+v, want the assistant reply", msgs[2])
	}
	if session.Compose("conv_1") != "" {
		t.Errorf("compose field not cleared after success: %q", session.Compose("conv_1"))
	}
}

func TestSessionSend_FailureRestoresCacheAndCompose(t *testing.T) {
	stub := &stubAPI{sendErr: errors.New("server rejected")}
	session := newTestSession(stub)
	session.Cache().Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})

	msgs, err := session.Send(context.Background(), "conv_1", "doomed text")
	if err == nil {
		t.Fatal("expected error from rejected send")
	}

	// cache returns to exactly the pre-send snapshot
	if len(msgs) != 1 || msgs[0].ID != "msg_1" {
		t.Errorf("cache after failed send = %+v, want [m1]", msgs)
	}

	// outbound text goes back to the compose field, not lost
	if session.Compose("conv_1") != "doomed text" {
		t.Errorf("compose = %q, want the rejected text", session.Compose("conv_1"))
	}
}

func TestSessionSend_RefetchFailureStillKeepsReply(t *testing.T) {
	stub := &stubAPI{
		reply:   &Message{ID: "msg_2", Role: "assistant", Content: "hi!"},
		histErr: errors.New("transient"),
	}
	session := newTestSession(stub)
	session.Cache().Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})

	msgs, err := session.Send(context.Background(), "conv_1", "hello")
	if err != nil {
		t.Fatalf("Send must not fail when only the refetch fails: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want snapshot + user turn + reply", len(msgs))
	}
	if msgs[2].Content != "hi!" {
		t.Errorf("reply missing from reconciled cache: %+v", msgs)
	}
}
