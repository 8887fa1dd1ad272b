package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Store     StoreConfig
	Assistant AssistantConfig
	Topic     TopicConfig
	Events    EventsConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WebSocketLogPath   string
	CorsAllowedOrigins string
	SessionTTLMinutes  int
}

type CatalogConfig struct {
	Source string // file path or http(s) URL of products.json
}

type StoreConfig struct {
	Driver            string // "memory" or "redis"
	RedisURL          string
	SelectionTTLHours int
}

type AssistantConfig struct {
	Provider         string
	ProxyURL         string
	Model            string
	Temperature      float64
	RoutineMaxTokens int
	ChatMaxTokens    int
	MaxSearchResults int
	SystemPrompt     string
}

type TopicConfig struct {
	Keywords         []string
	RoutineThreshold int
}

type EventsConfig struct {
	NatsURL string // empty disables the activity stream
	Topic   string // in-process widget event topic
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

const defaultSystemPrompt = "You are a helpful skincare and beauty routine assistant. Only answer questions that relate to the generated routine or to topics like skincare, haircare, makeup, fragrance, suncare, products, and routines. If a user asks about unrelated topics, politely refuse and state you can only help with routine/product related questions. Keep answers concise and friendly. Use the conversation history to provide context-aware follow-ups. When a question requires current information (product launches, current availability, recent news, or up-to-date guidance), perform a live web search and include concise citations or links in your reply so the user can verify sources."

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WebSocketLogPath:   getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 120),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", "web/products.json"),
		},
		Store: StoreConfig{
			Driver:            getEnv("STORE_DRIVER", "memory"),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			SelectionTTLHours: getEnvAsInt("SELECTION_TTL_HOURS", 24*30),
		},
		Assistant: AssistantConfig{
			Provider:         getEnv("ASSISTANT_PROVIDER", "proxy"),
			ProxyURL:         getEnv("ASSISTANT_PROXY_URL", "https://loral-chatbot.n0hama01.workers.dev/"),
			Model:            getEnv("ASSISTANT_MODEL", "gpt-4o"),
			Temperature:      getEnvAsFloat("ASSISTANT_TEMPERATURE", 0.7),
			RoutineMaxTokens: getEnvAsInt("ASSISTANT_ROUTINE_MAX_TOKENS", 800),
			ChatMaxTokens:    getEnvAsInt("ASSISTANT_CHAT_MAX_TOKENS", 500),
			MaxSearchResults: getEnvAsInt("ASSISTANT_MAX_SEARCH_RESULTS", 5),
			SystemPrompt:     getEnv("ASSISTANT_SYSTEM_PROMPT", defaultSystemPrompt),
		},
		Topic: TopicConfig{
			Keywords:         getEnvAsList("TOPIC_KEYWORDS", nil),
			RoutineThreshold: getEnvAsInt("TOPIC_ROUTINE_THRESHOLD", 30),
		},
		Events: EventsConfig{
			NatsURL: getEnv("NATS_URL", ""),
			Topic:   getEnv("WIDGET_EVENTS_TOPIC", "widget.events"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "routine-advisor-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, fallback []string) []string {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
