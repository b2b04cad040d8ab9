package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/learnity/backend/internal/ai"
)

// Strategy selects between the historical multi-call pipeline and the
// single-call pipeline that replaced it.
type Strategy string

const (
	// StrategyOptimized issues one comprehensive LLM call per chapter.
	StrategyOptimized Strategy = "optimized"
	// StrategyLegacy issues one LLM call per field and per subtopic,
	// O(chapters x subtopics) calls per course. Kept for fidelity.
	StrategyLegacy Strategy = "legacy"
)

// VideoSearcher resolves a search query to a video id ("" when no results)
type VideoSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// TranscriptFetcher returns a video's transcript, or "" on any failure
type TranscriptFetcher interface {
	GetTranscript(ctx context.Context, videoID string) string
}

// ImageSearcher resolves a search term to an image URL, never failing
type ImageSearcher interface {
	SearchImage(ctx context.Context, term string) string
}

// Generator composes the structured LLM client with the external lookup
// services into the course content pipelines.
type Generator struct {
	llm         ai.Provider
	videos      VideoSearcher
	transcripts TranscriptFetcher
	images      ImageSearcher
	strategy    Strategy
}

// NewGenerator creates a content generator
func NewGenerator(llm ai.Provider, videos VideoSearcher, transcripts TranscriptFetcher, images ImageSearcher, strategy Strategy) *Generator {
	if strategy == "" {
		strategy = StrategyOptimized
	}
	return &Generator{
		llm:         llm,
		videos:      videos,
		transcripts: transcripts,
		images:      images,
		strategy:    strategy,
	}
}

// Strategy returns the configured generation strategy
func (g *Generator) Strategy() Strategy {
	return g.strategy
}

// chaptersContext formats the course outline for prompt injection
func chaptersContext(chapters []ChapterRef) string {
	lines := make([]string, len(chapters))
	for i, ch := range chapters {
		lines[i] = fmt.Sprintf("%d. %s", i+1, ch.Title)
	}
	return strings.Join(lines, "\n  ")
}
