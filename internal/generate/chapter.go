package generate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/prompts"
)

const chapterSchema = `{
  "subtopics": ["string", "string", "string"],
  "subtopicExplanations": ["string", "string", "string"],
  "youtubeSearchQuery": "string",
  "courseDescription": "string",
  "imageSearchTerm": "string",
  "mcqs": [{"questionId": 1, "question": "string", "options": ["string", "string", "string", "string"], "answer": "string"}]
}`

const summarySchema = `{"summary": "string"}`

// transcripts are capped before summarisation so long videos fit the
// prompt. Must stay well below ai.DefaultMaxContentLen: the rendered
// prompt adds the template and format instructions after the transcript,
// and a provider-side cut would drop that tail.
const maxTranscriptChars = 20000

// GenerateChapter produces fully resolved content for one chapter.
// courseTitle may be empty (standalone chapter); when allChapters is
// empty the current chapter stands in as the whole outline so the prompt
// is always well-formed. Chapters of a course must be generated through
// GenerateChapters to share course context and question numbering.
func (g *Generator) GenerateChapter(ctx context.Context, chapterTitle, courseTitle string, allChapters []ChapterRef) (*ChapterContent, error) {
	if strings.TrimSpace(chapterTitle) == "" {
		return nil, fmt.Errorf("chapter title must not be empty")
	}
	if len(allChapters) == 0 {
		allChapters = []ChapterRef{{ID: 1, Title: chapterTitle}}
	}

	if g.strategy == StrategyLegacy {
		questionID := 0
		course, err := g.legacyCourseFields(ctx, courseTitle)
		if err != nil {
			return nil, err
		}
		return g.generateChapterLegacy(ctx, chapterTitle, courseTitle, course, &questionID)
	}

	raw, err := g.generateAllChapterContent(ctx, chapterTitle, courseTitle, allChapters)
	if err != nil {
		return nil, err
	}
	return g.resolveChapter(ctx, chapterTitle, courseTitle, raw)
}

// GenerateChapters generates every chapter of a course sequentially, one
// chapter's full pipeline completing before the next begins. Each call
// receives the full outline for coherence across chapters.
func (g *Generator) GenerateChapters(ctx context.Context, chapters []ChapterRef, courseTitle string) ([]*ChapterContent, error) {
	if len(chapters) == 0 {
		return nil, fmt.Errorf("course has no chapters")
	}

	if g.strategy == StrategyLegacy {
		return g.generateChaptersLegacy(ctx, chapters, courseTitle)
	}

	generated := make([]*ChapterContent, 0, len(chapters))
	for _, chapter := range chapters {
		log.Printf("[Generate.Chapters] Generating chapter %d: %q", chapter.ID, chapter.Title)
		content, err := g.GenerateChapter(ctx, chapter.Title, courseTitle, chapters)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", chapter.Title, err)
		}
		generated = append(generated, content)
	}
	log.Printf("[Generate.Chapters] Generated %d chapters for %q", len(generated), courseTitle)
	return generated, nil
}

// generateAllChapterContent is the single comprehensive structured call of
// the optimized pipeline: subtopics, explanations, search terms,
// description and MCQs in one response.
func (g *Generator) generateAllChapterContent(ctx context.Context, chapterTitle, courseTitle string, allChapters []ChapterRef) (*ChapterContentRaw, error) {
	var raw ChapterContentRaw
	err := ai.RetryWithBackoff(ctx, "ChapterContent", func() error {
		raw = ChapterContentRaw{}
		return ai.Generate(ctx, g.llm, prompts.ChapterComprehensive, map[string]string{
			"courseTitle":     courseTitle,
			"chaptersContext": chaptersContext(allChapters),
			"chapterTitle":    chapterTitle,
		}, chapterSchema, &raw)
	})
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

// resolveChapter turns the proposed search terms into concrete resources
// and assembles the final chapter. Video and image lookups have no data
// dependency and run concurrently; the transcript needs the video id and
// runs strictly after.
func (g *Generator) resolveChapter(ctx context.Context, chapterTitle, courseTitle string, raw *ChapterContentRaw) (*ChapterContent, error) {
	var videoID, imageURL string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		id, err := g.videos.Search(egCtx, raw.YoutubeSearchQuery)
		if err != nil {
			return err
		}
		videoID = id
		return nil
	})
	if courseTitle != "" {
		eg.Go(func() error {
			imageURL = g.images.SearchImage(egCtx, raw.ImageSearchTerm)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("external resolution failed: %w", err)
	}

	summary := ""
	if videoID != "" {
		if transcript := g.transcripts.GetTranscript(ctx, videoID); transcript != "" {
			s, err := g.summarizeTranscript(ctx, transcript)
			if err != nil {
				return nil, err
			}
			summary = s
		}
	} else {
		log.Printf("[Generate.Chapter] No video found for %q, continuing without one", chapterTitle)
	}

	return &ChapterContent{
		Title:                chapterTitle,
		Subtopics:            raw.Subtopics,
		SubtopicExplanations: raw.SubtopicExplanations,
		YoutubeSearchQuery:   raw.YoutubeSearchQuery,
		VideoID:              videoID,
		Summary:              summary,
		Description:          raw.CourseDescription,
		ImageSearchTerm:      raw.ImageSearchTerm,
		ImageURL:             imageURL,
		MCQs:                 raw.MCQs,
	}, nil
}

// summarizeTranscript condenses a video transcript to 250 words or less
func (g *Generator) summarizeTranscript(ctx context.Context, transcript string) (string, error) {
	var out summaryOutput
	err := ai.RetryWithBackoff(ctx, "TranscriptSummary", func() error {
		out = summaryOutput{}
		return ai.Generate(ctx, g.llm, prompts.TranscriptSummary, map[string]string{
			"transcript": ai.TruncateToLimit(transcript, maxTranscriptChars),
		}, summarySchema, &out)
	})
	if err != nil {
		return "", fmt.Errorf("transcript summary failed: %w", err)
	}
	return out.Summary, nil
}

// GenerateCourseDescription produces the ~90 character course description
// as an independent call (used when a course is created without chapters
// having produced one).
func (g *Generator) GenerateCourseDescription(ctx context.Context, courseTitle string) (string, error) {
	var out descriptionOutput
	err := ai.RetryWithBackoff(ctx, "CourseDescription", func() error {
		out = descriptionOutput{}
		return ai.Generate(ctx, g.llm, prompts.CourseDescription, map[string]string{
			"courseTitle": courseTitle,
		}, `{"description": "string"}`, &out)
	})
	if err != nil {
		return "", err
	}
	return out.Description, nil
}

// GenerateCourseImage proposes a single-word search term for the course
// and resolves it to an image URL.
func (g *Generator) GenerateCourseImage(ctx context.Context, courseTitle string) (term, imageURL string, err error) {
	var out imageTermOutput
	err = ai.RetryWithBackoff(ctx, "CourseImage", func() error {
		out = imageTermOutput{}
		return ai.Generate(ctx, g.llm, prompts.ImageTerm, map[string]string{
			"courseTitle": courseTitle,
		}, `{"imageSearchTerm": "string"}`, &out)
	})
	if err != nil {
		return "", "", err
	}
	return out.ImageSearchTerm, g.images.SearchImage(ctx, out.ImageSearchTerm), nil
}
