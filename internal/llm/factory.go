package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/webtoon/internal/config"
)

// NewClient builds an oracle client from config, wrapping it with the
// response cache and per-call timeout decorators when configured.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	var client LLMClient
	var err error

	switch provider {
	case "openai":
		client = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "gemini":
		client, err = NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}

	case "claude":
		client = NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; reuse that client.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama but required by the client
		}
		client = NewOpenAIClient(apiKey, cfg.Model, baseURL)

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}

	if cfg.CacheTTLSeconds > 0 {
		client = NewCachedClient(client, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}
	if cfg.TimeoutSeconds > 0 {
		client = WithTimeout(client, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}

	return client, nil
}
