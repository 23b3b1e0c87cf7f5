package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	openai "github.com/sashabaranov/go-openai"
)

// Store is the process-wide conversation table for buffered chat mode: a
// bounded map of conversation id to a bounded turn log. All mutation runs
// under one store mutex, so concurrent requests against the same conversation
// serialize on append/trim. The table itself is LRU-bounded so abandoned
// conversations cannot grow memory without bound.
type Store struct {
	mu       sync.Mutex
	table    *lru.Cache
	maxItems int
}

type entry struct {
	messages   []openai.ChatCompletionMessage
	lastActive time.Time
}

func NewStore(maxConversations, maxItems int) (*Store, error) {
	table, err := lru.New(maxConversations)
	if err != nil {
		return nil, err
	}
	return &Store{table: table, maxItems: maxItems}, nil
}

// Open resumes the conversation when the id is known, otherwise starts a new
// one. An unknown or empty id yields a freshly generated id with empty history.
func (s *Store) Open(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, ok := s.table.Get(id); ok {
			return id
		}
	}
	newID := id
	if newID == "" {
		newID = uuid.NewString()
	}
	s.table.Add(newID, &entry{lastActive: time.Now()})
	return newID
}

// History returns a copy of the turn log for the conversation.
func (s *Store) History(id string) []openai.ChatCompletionMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil
	}
	return append([]openai.ChatCompletionMessage(nil), e.messages...)
}

// Append adds turns to the conversation and trims the log to the most recent
// maxItems, dropping oldest turns first.
func (s *Store) Append(id string, messages ...openai.ChatCompletionMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		e = &entry{}
		s.table.Add(id, e)
	}
	e.messages = append(e.messages, messages...)
	if len(e.messages) > s.maxItems {
		e.messages = e.messages[len(e.messages)-s.maxItems:]
	}
	e.lastActive = time.Now()
}

// Len reports the number of retained turns for the conversation.
func (s *Store) Len(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return 0
	}
	return len(e.messages)
}

// SweepIdle drops conversations idle for longer than maxIdle and returns the
// number removed.
func (s *Store) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for _, key := range s.table.Keys() {
		value, ok := s.table.Peek(key)
		if !ok {
			continue
		}
		if e, ok := value.(*entry); ok && e.lastActive.Before(cutoff) {
			s.table.Remove(key)
			removed++
		}
	}
	return removed
}

func (s *Store) lookup(id string) (*entry, bool) {
	value, ok := s.table.Get(id)
	if !ok {
		return nil, false
	}
	e, ok := value.(*entry)
	return e, ok
}
