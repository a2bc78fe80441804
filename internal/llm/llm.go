package llm

import (
	"github.com/sashabaranov/go-openai"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/config"
)

var _ Client = (*openai.Client)(nil)

// NewClient creates a completion client for Gemini's OpenAI-compatible API.
func NewClient(cfg config.LLMConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return openai.NewClientWithConfig(clientConfig)
}
