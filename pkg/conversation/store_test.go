package conversation

import (
	"strings"
	"testing"
	"time"

	"routine-advisor-be/internal/entity"
	"routine-advisor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestNewStartsWithHiddenSystemTurn(t *testing.T) {
	s := New("be helpful", fixedClock())

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, entity.RoleSystem, turns[0].Role)
	assert.Equal(t, "be helpful", turns[0].Content)
	assert.False(t, turns[0].Visible)
	assert.Empty(t, s.Visible())
}

func TestAppendKeepsOrderAndVisibility(t *testing.T) {
	s := New("sys", fixedClock())
	s.Append(entity.RoleUser, "routine JSON", false)
	s.Append(entity.RoleAssistant, "Morning: cleanser", true)
	s.Append(entity.RoleUser, "what about spf?", true)

	assert.Equal(t, 4, s.Len())

	visible := s.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Morning: cleanser", visible[0].Content)
	assert.Equal(t, "what about spf?", visible[1].Content)
	assert.True(t, visible[0].CreatedAt.Before(visible[1].CreatedAt))

	assert.Equal(t, []llm.Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "routine JSON"},
		{Role: "assistant", Content: "Morning: cleanser"},
		{Role: "user", Content: "what about spf?"},
	}, s.Messages())
}

func TestHasRoutine(t *testing.T) {
	s := New(strings.Repeat("long system prompt ", 10), fixedClock())
	assert.False(t, s.HasRoutine(30))

	s.Append(entity.RoleUser, strings.Repeat("u", 100), true)
	assert.False(t, s.HasRoutine(30))

	s.Append(entity.RoleAssistant, strings.Repeat("a", 30), true)
	assert.False(t, s.HasRoutine(30))

	s.Append(entity.RoleAssistant, strings.Repeat("a", 31), true)
	assert.True(t, s.HasRoutine(30))
}

func TestHasRoutineCountsSurrogatePairs(t *testing.T) {
	s := New("sys", fixedClock())

	// 16 emoji are 32 UTF-16 units but only 16 runes.
	s.Append(entity.RoleAssistant, strings.Repeat("\U0001F9F4", 16), true)
	assert.True(t, s.HasRoutine(30))

	s = New("sys", fixedClock())
	s.Append(entity.RoleAssistant, strings.Repeat("\U0001F9F4", 15), true)
	assert.False(t, s.HasRoutine(30))
}

func TestTurnsIsACopy(t *testing.T) {
	s := New("sys", nil)
	turns := s.Turns()
	turns[0].Content = "changed"
	assert.Equal(t, "sys", s.Turns()[0].Content)
}
