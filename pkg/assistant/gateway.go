// Package assistant is the boundary that turns a conversation into a reply
// from the remote chat-completion proxy.
package assistant

import (
	"context"

	"routine-advisor-be/pkg/llm"
)

const (
	DefaultModel            = "gpt-4o"
	DefaultTemperature      = 0.7
	DefaultRoutineMaxTokens = 800
	DefaultChatMaxTokens    = 500
	DefaultMaxSearchResults = 5
)

type Gateway struct {
	provider llm.LLMProvider
	defaults []llm.Option
}

// NewGateway wraps provider. defaults are applied before per-call options.
func NewGateway(provider llm.LLMProvider, defaults ...llm.Option) *Gateway {
	return &Gateway{provider: provider, defaults: defaults}
}

// Complete sends messages and returns the assistant content.
func (g *Gateway) Complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	all := make([]llm.Option, 0, len(g.defaults)+len(opts))
	all = append(all, g.defaults...)
	all = append(all, opts...)
	return g.provider.Chat(ctx, messages, all...)
}
