// Package conversation is the append-only chat history sent to the assistant.
package conversation

import (
	"time"
	"unicode/utf16"

	"routine-advisor-be/internal/entity"
	"routine-advisor-be/pkg/llm"
)

// Store is an append-only sequence of turns whose first turn is always the
// hidden system prompt. It is not safe for concurrent use.
type Store struct {
	turns []entity.Turn
	now   func() time.Time
}

func New(systemPrompt string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	s.turns = append(s.turns, entity.Turn{
		Role:      entity.RoleSystem,
		Content:   systemPrompt,
		Visible:   false,
		CreatedAt: now(),
	})
	return s
}

// Append adds a turn stamped with the store clock and returns it.
func (s *Store) Append(role, content string, visible bool) entity.Turn {
	t := entity.Turn{
		Role:      role,
		Content:   content,
		Visible:   visible,
		CreatedAt: s.now(),
	}
	s.turns = append(s.turns, t)
	return t
}

func (s *Store) Turns() []entity.Turn {
	out := make([]entity.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Visible returns the turns that are shown in the chat window.
func (s *Store) Visible() []entity.Turn {
	out := make([]entity.Turn, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Visible {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.turns)
}

// Messages strips visibility and timestamps for the assistant request.
func (s *Store) Messages() []llm.Message {
	out := make([]llm.Message, len(s.turns))
	for i, t := range s.turns {
		out[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return out
}

// HasRoutine reports whether any assistant reply is longer than threshold
// UTF-16 code units, which is taken to mean a routine was generated.
func (s *Store) HasRoutine(threshold int) bool {
	for _, t := range s.turns {
		if t.Role == entity.RoleAssistant && len(utf16.Encode([]rune(t.Content))) > threshold {
			return true
		}
	}
	return false
}
