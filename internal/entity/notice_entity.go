package entity

const (
	NoticeInfo    = "info"
	NoticePending = "pending"
	NoticeError   = "error"
)

// Notice is the inline status line shown at the end of the chat window. It
// stays until the next routine or chat operation replaces or clears it.
type Notice struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
}
