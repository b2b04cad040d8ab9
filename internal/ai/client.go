package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// chat completion wire types for OpenAI-compatible APIs
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// DefaultMaxContentLen caps rendered prompts sent to a provider. Callers
// embedding large content (transcripts, page text) must cap it below this
// before rendering, or the tail of the prompt gets cut.
const DefaultMaxContentLen = 24000 // ~6000 tokens

// BaseProvider implements Provider for OpenAI-compatible chat APIs (Groq, Cerebras)
type BaseProvider struct {
	config ProviderConfig
	client *http.Client
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config ProviderConfig) *BaseProvider {
	if config.MaxContentLen == 0 {
		config.MaxContentLen = DefaultMaxContentLen
	}
	return &BaseProvider{
		config: config,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *BaseProvider) Name() string {
	return p.config.Name
}

// sendRequest handles HTTP requests to the AI provider
func (p *BaseProvider) sendRequest(ctx context.Context, messages []chatMessage, operation string) (string, error) {
	log.Printf("[%s.%s] Sending request...", p.config.Name, operation)

	jsonBody, err := json.Marshal(chatRequest{
		Model:    p.config.TextModel,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.config.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[%s.%s] Response status: %d", p.config.Name, operation, resp.StatusCode)

	if resp.StatusCode != 200 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	log.Printf("[%s.%s] Success, response length: %d", p.config.Name, operation, len(content))
	return content, nil
}

// Complete sends a single user prompt
func (p *BaseProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if len(prompt) > p.config.MaxContentLen {
		log.Printf("[%s.Complete] Truncating prompt from %d to %d chars", p.config.Name, len(prompt), p.config.MaxContentLen)
		prompt = prompt[:p.config.MaxContentLen]
	}
	return p.sendRequest(ctx, []chatMessage{{Role: "user", Content: prompt}}, "Complete")
}

// Chat sends a system prompt, alternating history and a new user input
func (p *BaseProvider) Chat(ctx context.Context, system string, history []Message, input string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: input})
	return p.sendRequest(ctx, messages, "Chat")
}
