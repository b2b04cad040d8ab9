package generate

import (
	"context"
	"fmt"
	"log"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/prompts"
)

// The legacy pipeline predates the comprehensive single-call design: one
// LLM call per field, one per subtopic explanation, one per MCQ. It
// issues O(chapters x subtopics) calls per course where the optimized
// pipeline issues O(chapters), but both produce schema-compatible
// ChapterContent.

// legacyCourse carries the course-level fields the legacy pipeline
// generates once per course rather than once per chapter.
type legacyCourse struct {
	description string
	imageTerm   string
	imageURL    string
}

// legacyCourseFields generates the course description and image once
func (g *Generator) legacyCourseFields(ctx context.Context, courseTitle string) (*legacyCourse, error) {
	if courseTitle == "" {
		return &legacyCourse{}, nil
	}
	description, err := g.GenerateCourseDescription(ctx, courseTitle)
	if err != nil {
		return nil, fmt.Errorf("course description: %w", err)
	}
	term, imageURL, err := g.GenerateCourseImage(ctx, courseTitle)
	if err != nil {
		return nil, fmt.Errorf("course image: %w", err)
	}
	return &legacyCourse{description: description, imageTerm: term, imageURL: imageURL}, nil
}

// generateChaptersLegacy runs the sequential loop-based pipeline over a
// course. questionID increments globally across all chapters.
func (g *Generator) generateChaptersLegacy(ctx context.Context, chapters []ChapterRef, courseTitle string) ([]*ChapterContent, error) {
	course, err := g.legacyCourseFields(ctx, courseTitle)
	if err != nil {
		return nil, err
	}

	questionID := 0
	generated := make([]*ChapterContent, 0, len(chapters))
	for _, chapter := range chapters {
		log.Printf("[Generate.Legacy] Generating chapter %d: %q", chapter.ID, chapter.Title)
		content, err := g.generateChapterLegacy(ctx, chapter.Title, courseTitle, course, &questionID)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", chapter.Title, err)
		}
		generated = append(generated, content)
	}
	return generated, nil
}

// generateChapterLegacy produces one chapter through the historical
// sequence: subtopics, per-subtopic explanations, youtube query, video +
// transcript + summary, then one MCQ per explanation.
func (g *Generator) generateChapterLegacy(ctx context.Context, chapterTitle, courseTitle string, course *legacyCourse, questionID *int) (*ChapterContent, error) {
	var subs subtopicsOutput
	err := ai.RetryWithBackoff(ctx, "Subtopics", func() error {
		subs = subtopicsOutput{}
		return ai.Generate(ctx, g.llm, prompts.Subtopics, map[string]string{
			"chapterTitle": chapterTitle,
		}, `{"subtopics": ["string", "string", "string"]}`, &subs)
	})
	if err != nil {
		return nil, fmt.Errorf("subtopics: %w", err)
	}

	explanations := make([]string, 0, len(subs.Subtopics))
	for _, subtopic := range subs.Subtopics {
		var expl explanationOutput
		err := ai.RetryWithBackoff(ctx, "Explanation", func() error {
			expl = explanationOutput{}
			return ai.Generate(ctx, g.llm, prompts.SubtopicExplanation, map[string]string{
				"chapterTitle": chapterTitle,
				"subtopic":     subtopic,
			}, `{"explanation": "string"}`, &expl)
		})
		if err != nil {
			return nil, fmt.Errorf("explanation for %q: %w", subtopic, err)
		}
		explanations = append(explanations, expl.Explanation)
	}

	var query youtubeQueryOutput
	err = ai.RetryWithBackoff(ctx, "YoutubeQuery", func() error {
		query = youtubeQueryOutput{}
		return ai.Generate(ctx, g.llm, prompts.YoutubeQuery, map[string]string{
			"chapterTitle": chapterTitle,
		}, `{"youtubeSearchQuery": "string"}`, &query)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube query: %w", err)
	}

	videoID, err := g.videos.Search(ctx, query.YoutubeSearchQuery)
	if err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}

	summary := ""
	if videoID != "" {
		if transcript := g.transcripts.GetTranscript(ctx, videoID); transcript != "" {
			summary, err = g.summarizeTranscript(ctx, transcript)
			if err != nil {
				return nil, err
			}
		}
	}

	mcqs := make([]MCQ, 0, len(explanations))
	for i, explanation := range explanations {
		var out mcqOutput
		err := ai.RetryWithBackoff(ctx, "MCQ", func() error {
			out = mcqOutput{}
			return ai.Generate(ctx, g.llm, prompts.MCQ, map[string]string{
				"subtopic":    subs.Subtopics[i],
				"explanation": explanation,
			}, `{"question": "string", "options": ["string", "string", "string", "string"], "answer": "string"}`, &out)
		})
		if err != nil {
			return nil, fmt.Errorf("mcq for %q: %w", subs.Subtopics[i], err)
		}

		*questionID++
		mcq := MCQ{
			QuestionID: *questionID,
			Question:   out.Question,
			Options:    out.Options,
			Answer:     out.Answer,
		}
		if err := mcq.normalizeAnswer(); err != nil {
			return nil, fmt.Errorf("%w: %v", ai.ErrSchemaValidation, err)
		}
		mcqs = append(mcqs, mcq)
	}

	return &ChapterContent{
		Title:                chapterTitle,
		Subtopics:            subs.Subtopics,
		SubtopicExplanations: explanations,
		YoutubeSearchQuery:   query.YoutubeSearchQuery,
		VideoID:              videoID,
		Summary:              summary,
		Description:          course.description,
		ImageSearchTerm:      course.imageTerm,
		ImageURL:             course.imageURL,
		MCQs:                 mcqs,
	}, nil
}
