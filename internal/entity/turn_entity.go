package entity

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of a conversation. Hidden turns are sent to the assistant
// but never rendered.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}
