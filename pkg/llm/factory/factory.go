package factory

import (
	"fmt"

	"routine-advisor-be/pkg/llm"
	"routine-advisor-be/pkg/llm/proxy"
)

func NewLLMProvider(providerType, modelName, url string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "proxy":
		if url == "" {
			return nil, fmt.Errorf("proxy provider requires a URL")
		}
		return proxy.NewProvider(url, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
