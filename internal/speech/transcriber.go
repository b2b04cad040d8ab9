package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// ErrTranscriptionFailed marks a non-success response from the
// speech-to-text endpoint. Propagated immediately, never retried.
var ErrTranscriptionFailed = errors.New("audio transcription failed")

// Transcriber posts audio clips to Groq's Whisper endpoint
type Transcriber struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewTranscriber creates a Whisper transcription client
func NewTranscriber(apiKey, model string) *Transcriber {
	return &Transcriber{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe posts an audio clip and returns the transcribed text.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("transcription API key is not set")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to copy audio data: %w", err)
	}
	writer.WriteField("model", t.model)
	writer.WriteField("temperature", "0")
	writer.WriteField("response_format", "json")
	writer.WriteField("language", "en")
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	log.Printf("[Transcriber] Posting audio clip %q (%d bytes)...", filename, body.Len())
	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %d %s", ErrTranscriptionFailed, resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrTranscriptionFailed, err)
	}
	if result.Text == "" {
		return "", fmt.Errorf("%w: no text returned", ErrTranscriptionFailed)
	}

	log.Printf("[Transcriber] Transcribed %d chars", len(result.Text))
	return result.Text, nil
}
