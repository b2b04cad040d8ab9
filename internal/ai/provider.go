package ai

import "context"

// Message is a single chat message exchanged with a model.
type Message struct {
	Role    string // "user", "assistant" or "system"
	Content string
}

// Provider defines the interface for LLM providers
type Provider interface {
	Name() string
	// Complete sends a single-prompt request and returns the raw text response.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat sends a system prompt, prior history and a new user input in one request.
	Chat(ctx context.Context, system string, history []Message, input string) (string, error)
}

// ProviderConfig holds configuration for an OpenAI-compatible provider
type ProviderConfig struct {
	Name          string
	BaseURL       string
	APIKey        string
	TextModel     string
	MaxContentLen int
}
