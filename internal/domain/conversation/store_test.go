package conversation

import (
	"fmt"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func newTestStore(t *testing.T, maxConversations, maxItems int) *Store {
	t.Helper()
	store, err := NewStore(maxConversations, maxItems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func userTurn(i int) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: fmt.Sprintf("turn %d", i),
	}
}

func TestOpenGeneratesIDForUnknownConversation(t *testing.T) {
	store := newTestStore(t, 8, 30)

	id := store.Open("")
	if id == "" {
		t.Fatal("expected generated id")
	}
	if again := store.Open(id); again != id {
		t.Fatalf("expected resumed id %q, got %q", id, again)
	}
}

func TestAppendTrimsOldestFirst(t *testing.T) {
	store := newTestStore(t, 8, 5)
	id := store.Open("")

	for i := 0; i < 9; i++ {
		store.Append(id, userTurn(i))
	}

	history := store.History(id)
	if len(history) != 5 {
		t.Fatalf("expected history trimmed to 5, got %d", len(history))
	}
	if history[0].Content != "turn 4" {
		t.Fatalf("expected oldest surviving turn to be 4, got %q", history[0].Content)
	}
	if history[4].Content != "turn 8" {
		t.Fatalf("expected newest turn to be 8, got %q", history[4].Content)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	store := newTestStore(t, 8, 30)
	id := store.Open("")
	store.Append(id, userTurn(0))

	history := store.History(id)
	history[0].Content = "mutated"

	if store.History(id)[0].Content != "turn 0" {
		t.Fatal("history mutation leaked into the store")
	}
}

func TestTableEvictsLeastRecentConversation(t *testing.T) {
	store := newTestStore(t, 2, 30)

	first := store.Open("")
	second := store.Open("")
	store.Append(first, userTurn(0))
	store.Append(second, userTurn(0))

	// Third conversation evicts the least recently used one.
	third := store.Open("")
	store.Append(third, userTurn(0))

	if store.Len(first) != 0 {
		t.Fatalf("expected first conversation evicted, got %d turns", store.Len(first))
	}
	if store.Len(second) == 0 || store.Len(third) == 0 {
		t.Fatal("expected the two recent conversations to survive")
	}
}

func TestSweepIdleRemovesStaleConversations(t *testing.T) {
	store := newTestStore(t, 8, 30)

	stale := store.Open("")
	store.Append(stale, userTurn(0))

	time.Sleep(20 * time.Millisecond)
	fresh := store.Open("")
	store.Append(fresh, userTurn(0))

	removed := store.SweepIdle(10 * time.Millisecond)
	if removed != 1 {
		t.Fatalf("expected 1 swept conversation, got %d", removed)
	}
	if store.Len(stale) != 0 {
		t.Fatal("expected stale conversation removed")
	}
	if store.Len(fresh) != 1 {
		t.Fatal("expected fresh conversation kept")
	}
}
