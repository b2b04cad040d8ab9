package generate

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/prompts"
)

const quizSchema = `{
  "questions": [{"question": "string", "options": ["string", "string", "string", "string"], "correctAnswer": 0, "explanation": "string"}]
}`

// quiz content excerpts are capped to keep the prompt within limits
const maxQuizContentChars = 20000

// GenerateQuiz produces quiz questions from a course excerpt. There is no
// meaningful partial result for a quiz, so any schema failure (including
// a wrong question count) propagates.
func (g *Generator) GenerateQuiz(ctx context.Context, courseTitle, content string, difficulty Difficulty) ([]QuizQuestion, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	count := difficulty.QuestionCount()

	var out quizOutput
	err := ai.RetryWithBackoff(ctx, "Quiz", func() error {
		out = quizOutput{}
		return ai.Generate(ctx, g.llm, prompts.Quiz, map[string]string{
			"count":       strconv.Itoa(count),
			"courseTitle": courseTitle,
			"content":     ai.TruncateToLimit(content, maxQuizContentChars),
			"difficulty":  string(difficulty),
		}, quizSchema, &out)
	})
	if err != nil {
		return nil, err
	}

	if len(out.Questions) != count {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ai.ErrSchemaValidation, len(out.Questions), count)
	}

	log.Printf("[Generate.Quiz] Generated %d %s questions for %q", count, difficulty, courseTitle)
	return out.Questions, nil
}
