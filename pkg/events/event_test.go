package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelectionChanged_NilKeysBecomeEmpty(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	e := SelectionChanged("s1", nil, at)

	assert.Equal(t, TypeSelectionChanged, e.EventType())
	assert.Equal(t, at, e.Timestamp())
	assert.Equal(t, []string{}, e.Payload()["keys"])
	assert.Equal(t, "s1", e.Payload()["session_id"])
}

func TestChatSent_OmitsText(t *testing.T) {
	e := ChatSent("s1", "refuse", time.Now())

	assert.Equal(t, TypeChatSent, e.EventType())
	assert.Equal(t, "refuse", e.Payload()["decision"])
	assert.Len(t, e.Payload(), 2)
}

func TestRoutineRequested(t *testing.T) {
	e := RoutineRequested("s1", 3, time.Now())
	assert.Equal(t, TypeRoutineRequested, e.EventType())
	assert.Equal(t, 3, e.Payload()["product_count"])
}
