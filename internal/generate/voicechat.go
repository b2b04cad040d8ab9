package generate

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/prompts"
)

// only the most recent turns are kept as conversational context
const maxHistoryTurns = 20

// AudioTranscriber turns an audio clip into text
type AudioTranscriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// VoiceResponder answers voice-chat turns: transcribe the clip, then
// reply conditioned on the persona description and the full history. The
// caller supplies the history every time; no session state lives here.
type VoiceResponder struct {
	llm ai.Provider
	stt AudioTranscriber
}

// NewVoiceResponder creates a voice chat responder
func NewVoiceResponder(llm ai.Provider, stt AudioTranscriber) *VoiceResponder {
	return &VoiceResponder{llm: llm, stt: stt}
}

// Respond transcribes the clip and produces the mentor's reply.
// Transcription failures propagate immediately: no partial reply exists.
func (v *VoiceResponder) Respond(ctx context.Context, turns []ChatTurn, filename string, audio io.Reader, personaDescription string) (*ChatTurn, error) {
	input, err := v.stt.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, err
	}
	log.Printf("[VoiceChat] Transcribed input: %d chars", len(input))

	if len(turns) > maxHistoryTurns {
		turns = turns[len(turns)-maxHistoryTurns:]
	}

	// Each stored turn becomes a human/assistant message pair, oldest first
	history := make([]ai.Message, 0, len(turns)*2)
	for _, turn := range turns {
		history = append(history,
			ai.Message{Role: "user", Content: turn.Sender},
			ai.Message{Role: "assistant", Content: turn.Response},
		)
	}

	system := ai.RenderTemplate(prompts.VoiceChat, map[string]string{
		"voiceMentorDescription": personaDescription,
	})

	var response string
	err = ai.RetryWithBackoff(ctx, "VoiceChat", func() error {
		response, err = v.llm.Chat(ctx, system, history, input)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("voice chat response failed: %w", err)
	}

	return &ChatTurn{
		Sender:   input,
		Response: response,
		ID:       uuid.NewString(),
	}, nil
}
