package generate_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/internal/generate"
)

// MockTranscriber returns a fixed transcription or error
type MockTranscriber struct {
	text  string
	err   error
	calls int
}

func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	m.calls++
	return m.text, m.err
}

// MockChatLLM records the chat invocation
type MockChatLLM struct {
	MockLLM
	system  string
	history []ai.Message
	input   string
}

func (m *MockChatLLM) Chat(ctx context.Context, system string, history []ai.Message, input string) (string, error) {
	m.system = system
	m.history = history
	m.input = input
	return "mentor reply", nil
}

func TestVoiceChatRespond(t *testing.T) {
	llm := &MockChatLLM{}
	stt := &MockTranscriber{text: "what is a goroutine"}
	v := generate.NewVoiceResponder(llm, stt)

	turns := []generate.ChatTurn{
		{Sender: "hello", Response: "hi there"},
	}
	turn, err := v.Respond(context.Background(), turns, "clip.webm", strings.NewReader("audio"), "a patient Go mentor")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if turn.Sender != "what is a goroutine" {
		t.Errorf("turn.Sender = %q, want the transcription", turn.Sender)
	}
	if turn.Response != "mentor reply" {
		t.Errorf("turn.Response = %q", turn.Response)
	}
	if turn.ID == "" {
		t.Error("turn id missing")
	}
	if llm.input != "what is a goroutine" {
		t.Errorf("llm input = %q, want the transcription", llm.input)
	}
	if !strings.Contains(llm.system, "a patient Go mentor") {
		t.Error("persona description missing from the system prompt")
	}
}

func TestVoiceChatHistoryBecomesMessagePairs(t *testing.T) {
	llm := &MockChatLLM{}
	stt := &MockTranscriber{text: "next question"}
	v := generate.NewVoiceResponder(llm, stt)

	turns := []generate.ChatTurn{
		{Sender: "first", Response: "answer one"},
		{Sender: "second", Response: "answer two"},
	}
	if _, err := v.Respond(context.Background(), turns, "clip.webm", strings.NewReader("audio"), "mentor"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if len(llm.history) != 4 {
		t.Fatalf("history = %d messages, want 4", len(llm.history))
	}
	wantRoles := []string{"user", "assistant", "user", "assistant"}
	wantContent := []string{"first", "answer one", "second", "answer two"}
	for i, msg := range llm.history {
		if msg.Role != wantRoles[i] || msg.Content != wantContent[i] {
			t.Errorf("history[%d] = {%s %q}, want {%s %q}", i, msg.Role, msg.Content, wantRoles[i], wantContent[i])
		}
	}
}

func TestVoiceChatTrimsLongHistory(t *testing.T) {
	llm := &MockChatLLM{}
	stt := &MockTranscriber{text: "question"}
	v := generate.NewVoiceResponder(llm, stt)

	turns := make([]generate.ChatTurn, 30)
	for i := range turns {
		turns[i] = generate.ChatTurn{Sender: fmt.Sprintf("q%d", i), Response: fmt.Sprintf("a%d", i)}
	}
	if _, err := v.Respond(context.Background(), turns, "clip.webm", strings.NewReader("audio"), "mentor"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	// only the 20 most recent turns survive, as message pairs
	if len(llm.history) != 40 {
		t.Fatalf("history = %d messages, want 40", len(llm.history))
	}
	if llm.history[0].Content != "q10" {
		t.Errorf("oldest kept turn = %q, want q10", llm.history[0].Content)
	}
	if llm.history[39].Content != "a29" {
		t.Errorf("newest kept turn = %q, want a29", llm.history[39].Content)
	}
}

func TestVoiceChatTranscriptionFailure(t *testing.T) {
	llm := &MockChatLLM{}
	stt := &MockTranscriber{err: fmt.Errorf("upstream said no")}
	v := generate.NewVoiceResponder(llm, stt)

	_, err := v.Respond(context.Background(), nil, "clip.webm", strings.NewReader("audio"), "mentor")
	if err == nil {
		t.Fatal("expected the transcription error to propagate")
	}
	if !errors.Is(err, stt.err) {
		t.Errorf("error = %v, want the transcription error", err)
	}
	if llm.input != "" {
		t.Error("the LLM must not be invoked when transcription fails")
	}
}
