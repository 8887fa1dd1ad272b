package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature      float64
	MaxTokens        int
	Model            string // Override default model
	Tools            []string
	IncludeCitations bool
	MaxSearchResults int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithWebSearch asks the proxy to enable its web search tool and inline citations.
func WithWebSearch(maxResults int) Option {
	return func(o *Options) {
		o.Tools = []string{"web_search"}
		o.IncludeCitations = true
		o.MaxSearchResults = maxResults
	}
}

// ErrNoReply is returned when a successful response carries no message content.
var ErrNoReply = errors.New("llm: response contained no reply")

// StatusError is a non-2xx answer from the provider. Body is kept verbatim.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: status %d %s", e.StatusCode, e.Status)
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}
