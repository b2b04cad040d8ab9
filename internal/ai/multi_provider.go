package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// MultiProvider tries providers in order until one succeeds,
// spreading load away from a single rate-limited endpoint.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider creates a new multi-provider fallback chain
func NewMultiProvider(providers ...Provider) *MultiProvider {
	if len(providers) == 0 {
		panic("at least one provider required")
	}
	return &MultiProvider{providers: providers}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "Multi[" + strings.Join(names, "+") + "]"
}

// Complete tries each provider in order until one succeeds
func (m *MultiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	for i, provider := range m.providers {
		log.Printf("[MultiProvider] Trying %s for completion (attempt %d/%d)...", provider.Name(), i+1, len(m.providers))
		out, err := provider.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		log.Printf("[MultiProvider] %s failed: %v", provider.Name(), err)
	}
	return "", fmt.Errorf("all providers failed for completion")
}

// Chat tries each provider in order until one succeeds
func (m *MultiProvider) Chat(ctx context.Context, system string, history []Message, input string) (string, error) {
	for i, provider := range m.providers {
		log.Printf("[MultiProvider] Trying %s for chat (attempt %d/%d)...", provider.Name(), i+1, len(m.providers))
		out, err := provider.Chat(ctx, system, history, input)
		if err == nil {
			return out, nil
		}
		log.Printf("[MultiProvider] %s failed: %v", provider.Name(), err)
	}
	return "", fmt.Errorf("all providers failed for chat")
}
