package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "gpt-4o", cfg.Assistant.Model)
	assert.Equal(t, 0.7, cfg.Assistant.Temperature)
	assert.Equal(t, 800, cfg.Assistant.RoutineMaxTokens)
	assert.Equal(t, 500, cfg.Assistant.ChatMaxTokens)
	assert.Equal(t, 5, cfg.Assistant.MaxSearchResults)
	assert.Equal(t, 30, cfg.Topic.RoutineThreshold)
	assert.Nil(t, cfg.Topic.Keywords)
	assert.Contains(t, cfg.Assistant.SystemPrompt, "skincare")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("ASSISTANT_TEMPERATURE", "0.2")
	t.Setenv("ASSISTANT_CHAT_MAX_TOKENS", "not-a-number")
	t.Setenv("TOPIC_KEYWORDS", " nails, , lashes ")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 0.2, cfg.Assistant.Temperature)
	assert.Equal(t, 500, cfg.Assistant.ChatMaxTokens)
	assert.Equal(t, []string{"nails", "lashes"}, cfg.Topic.Keywords)
}

func TestLoadTracing(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4318")

	cfg := Load()

	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "jaeger:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "routine-advisor-backend", cfg.Tracing.ServiceName)
}
