package generate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/internal/generate"
)

func TestGenerateQuizQuestionCounts(t *testing.T) {
	tests := []struct {
		difficulty generate.Difficulty
		want       int
	}{
		{generate.DifficultyEasy, 5},
		{generate.DifficultyMedium, 10},
		{generate.DifficultyHard, 15},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			g, llm, _, _, _ := newTestGenerator(generate.StrategyOptimized)
			llm.quizCount = tt.want

			questions, err := g.GenerateQuiz(context.Background(), "Learn Go", "chapter content", tt.difficulty)
			if err != nil {
				t.Fatalf("GenerateQuiz failed: %v", err)
			}
			if len(questions) != tt.want {
				t.Errorf("questions = %d, want %d", len(questions), tt.want)
			}
			for i, q := range questions {
				if len(q.Options) != 4 {
					t.Errorf("question %d has %d options, want 4", i, len(q.Options))
				}
				if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
					t.Errorf("question %d correctAnswer = %d, out of range", i, q.CorrectAnswer)
				}
			}
		})
	}
}

func TestGenerateQuizWrongCount(t *testing.T) {
	g, llm, _, _, _ := newTestGenerator(generate.StrategyOptimized)
	llm.quizCount = 7 // medium wants 10

	_, err := g.GenerateQuiz(context.Background(), "Learn Go", "chapter content", generate.DifficultyMedium)
	if !errors.Is(err, ai.ErrSchemaValidation) {
		t.Errorf("error = %v, want ErrSchemaValidation for a wrong question count", err)
	}
}

func TestGenerateQuizUnknownDifficulty(t *testing.T) {
	g, llm, _, _, _ := newTestGenerator(generate.StrategyOptimized)

	if _, err := g.GenerateQuiz(context.Background(), "Learn Go", "content", "impossible"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
	if llm.completions != 0 {
		t.Errorf("llm completions = %d, want 0 for invalid input", llm.completions)
	}
}
