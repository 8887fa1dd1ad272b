package store

import (
	"sync"
	"time"

	"routine-advisor-be/internal/entity"
	"routine-advisor-be/pkg/conversation"
	"routine-advisor-be/pkg/selection"
)

// Session is the widget state of one browser session. Every field is guarded
// by Mu; the in-flight flag allows one assistant request at a time.
type Session struct {
	Mu sync.Mutex

	ID string

	Selection    *selection.Store
	Conversation *conversation.Store

	// THE SCOPE (products of the chosen category, or the whole catalog once searched)
	Scope       []entity.Product
	ScopeLoaded bool
	Category    string
	Query       string

	// Category selector options, filled from the first successful catalog load
	Categories []string

	// Inline status at the end of the chat window
	Notice *entity.Notice

	InFlight  bool
	CreatedAt time.Time
}

func NewSession(id, systemPrompt string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:           id,
		Selection:    selection.NewStore(),
		Conversation: conversation.New(systemPrompt, now),
		CreatedAt:    now(),
	}
}
