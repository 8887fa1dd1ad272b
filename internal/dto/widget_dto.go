package dto

import "routine-advisor-be/internal/view"

type SelectCategoryRequest struct {
	Category string `json:"category" form:"category" validate:"required,max=100"`
}

type SearchRequest struct {
	Query string `json:"q" form:"q" validate:"max=200"`
}

type ToggleProductRequest struct {
	Key string `json:"key" form:"key" validate:"required,max=200"`
}

// SendChatRequest allows an empty text; the service ignores it.
type SendChatRequest struct {
	Text string `json:"text" form:"text" validate:"max=4000"`
}

const WidgetEventUpdate = "widget_update"

// WidgetEvent travels on the in-process bus from the widget service to the
// websocket consumer.
type WidgetEvent struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	Page      view.Page `json:"page"`
}

// WidgetPush is what a websocket client receives.
type WidgetPush struct {
	Type string    `json:"type"`
	Data view.Page `json:"data"`
}
