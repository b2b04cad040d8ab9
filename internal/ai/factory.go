package ai

import (
	"fmt"
	"log"
)

// NewLLMProvider creates a provider instance based on the provider name.
// Supported providers: "groq", "cerebras", "gemini".
// Panics on an unsupported provider name: failing fast beats silently
// defaulting to the wrong endpoint.
func NewLLMProvider(providerName, apiKey, modelID string) Provider {
	switch providerName {
	case "groq":
		return NewBaseProvider(ProviderConfig{
			Name:      "Groq",
			BaseURL:   "https://api.groq.com/openai/v1/chat/completions",
			APIKey:    apiKey,
			TextModel: modelID,
		})
	case "cerebras":
		return NewBaseProvider(ProviderConfig{
			Name:      "Cerebras",
			BaseURL:   "https://api.cerebras.ai/v1/chat/completions",
			APIKey:    apiKey,
			TextModel: modelID,
		})
	case "gemini":
		p, err := NewGeminiProvider(apiKey, modelID)
		if err != nil {
			log.Fatalf("[AI] Failed to initialize Gemini provider: %v", err)
		}
		return p
	default:
		panic(fmt.Sprintf("unsupported AI provider: %s (supported: groq, cerebras, gemini)", providerName))
	}
}
