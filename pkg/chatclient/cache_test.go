package chatclient

import (
	"strings"
	"testing"
)

func TestApplyOptimistic_AppendsTempMessage(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})

	tempID := cache.ApplyOptimistic("conv_1", "hello")
	if !strings.HasPrefix(tempID, "temp_") {
		t.Errorf("temp ID %q missing temp_ prefix", tempID)
	}

	msgs := cache.Get("conv_1")
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].ID != tempID || msgs[1].Content != "hello" {
		t.Errorf("optimistic message = %+v", msgs[1])
	}
}

func TestRevert_RestoresExactPreSendSnapshot(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})

	cache.ApplyOptimistic("conv_1", "rejected text")

	restored, ok := cache.Revert("conv_1")
	if !ok {
		t.Fatal("Revert found no pending snapshot")
	}
	if restored != "rejected text" {
		t.Errorf("restored text = %q", restored)
	}

	msgs := cache.Get("conv_1")
	if len(msgs) != 1 || msgs[0].ID != "msg_1" {
		t.Errorf("cache not restored to pre-send snapshot: %+v", msgs)
	}
}

func TestRevert_WithoutPendingIsNoop(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1"}})

	if _, ok := cache.Revert("conv_1"); ok {
		t.Fatal("Revert reported a snapshot that was never applied")
	}
	if len(cache.Get("conv_1")) != 1 {
		t.Error("cache mutated by no-op revert")
	}
}

func TestCommit_ReplacesTempWithAuthoritativeRows(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1", Role: "user", Content: "m1"}})
	tempID := cache.ApplyOptimistic("conv_1", "hello")

	authoritative := []Message{
		{ID: "msg_1", Role: "user", Content: "m1"},
		{ID: "msg_2", Role: "user", Content: "hello"},
		{ID: "msg_3", Role: "assistant", Content: "hi!"},
	}
	cache.Commit("conv_1", authoritative)

	msgs := cache.Get("conv_1")
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for _, msg := range msgs {
		if msg.ID == tempID {
			t.Errorf("temporary record %q survived commit", tempID)
		}
	}

	// committed state has no pending snapshot left to revert
	if _, ok := cache.Revert("conv_1"); ok {
		t.Error("pending snapshot survived commit")
	}
}

func TestApplyOptimistic_LastSnapshotWins(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1", Content: "m1"}})

	// second send fires before the first resolves; its snapshot includes
	// the first optimistic message and replaces the earlier snapshot
	cache.ApplyOptimistic("conv_1", "first")
	cache.ApplyOptimistic("conv_1", "second")

	restored, ok := cache.Revert("conv_1")
	if !ok {
		t.Fatal("no pending snapshot")
	}
	if restored != "second" {
		t.Errorf("restored text = %q, want the later send", restored)
	}

	msgs := cache.Get("conv_1")
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 (m1 plus first optimistic)", len(msgs))
	}
	if msgs[1].Content != "first" {
		t.Errorf("second message = %q, want the first optimistic send", msgs[1].Content)
	}
}

func TestCacheIsolation_CopiesOut(t *testing.T) {
	cache := NewCache()
	cache.Put("conv_1", []Message{{ID: "msg_1", Content: "m1"}})

	msgs := cache.Get("conv_1")
	msgs[0].Content = "mutated"

	if cache.Get("conv_1")[0].Content != "m1" {
		t.Error("cache contents leaked through Get")
	}
}
