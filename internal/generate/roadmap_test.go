package generate_test

import (
	"context"
	"testing"

	"github.com/learnity/backend/internal/generate"
)

func TestGenerateRoadmap(t *testing.T) {
	g, llm, videos, _, images := newTestGenerator(generate.StrategyOptimized)

	roadmap, err := g.GenerateRoadmap(context.Background(), "Go")
	if err != nil {
		t.Fatalf("GenerateRoadmap failed: %v", err)
	}
	if roadmap.Title == "" {
		t.Error("empty roadmap title")
	}
	if len(roadmap.Topics) == 0 {
		t.Fatal("roadmap has no topics")
	}
	for _, topic := range roadmap.Topics {
		if len(topic.Subtopics) == 0 {
			t.Errorf("topic %q has no subtopics", topic.Title)
		}
	}

	// a roadmap is a single structured call with no external lookups
	if llm.completions != 1 {
		t.Errorf("llm completions = %d, want 1", llm.completions)
	}
	if len(videos.queries) != 0 || len(images.terms) != 0 {
		t.Error("roadmap generation must not touch video or image providers")
	}
}

func TestGenerateRoadmapEmptyTitle(t *testing.T) {
	g, _, _, _, _ := newTestGenerator(generate.StrategyOptimized)

	if _, err := g.GenerateRoadmap(context.Background(), "  "); err == nil {
		t.Error("expected an error for a blank roadmap title")
	}
}
