package events

import "time"

// Event defines the contract for all widget activity events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeSelectionChanged = "SELECTION_CHANGED"
	TypeRoutineRequested = "ROUTINE_REQUESTED"
	TypeChatSent         = "CHAT_SENT"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// SelectionChanged reports the selection keys after a mutation.
func SelectionChanged(sessionID string, keys []string, at time.Time) BaseEvent {
	if keys == nil {
		keys = []string{}
	}
	return BaseEvent{
		Type: TypeSelectionChanged,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"keys":       keys,
		},
		OccurredAt: at,
	}
}

func RoutineRequested(sessionID string, productCount int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeRoutineRequested,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"product_count": productCount,
		},
		OccurredAt: at,
	}
}

// ChatSent carries the gate decision, never the message text.
func ChatSent(sessionID, decision string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeChatSent,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"decision":   decision,
		},
		OccurredAt: at,
	}
}
