package generate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/prompts"
)

const roadmapSchema = `{
  "title": "string",
  "topics": [{"title": "string", "subtopics": ["string"]}]
}`

// GenerateRoadmap produces a hierarchical topic/subtopic tree for a
// subject in a single structured call. No external lookups.
func (g *Generator) GenerateRoadmap(ctx context.Context, roadmapTitle string) (*Roadmap, error) {
	if strings.TrimSpace(roadmapTitle) == "" {
		return nil, fmt.Errorf("roadmap title must not be empty")
	}

	var roadmap Roadmap
	err := ai.RetryWithBackoff(ctx, "Roadmap", func() error {
		roadmap = Roadmap{}
		return ai.Generate(ctx, g.llm, prompts.Roadmap, map[string]string{
			"roadmapTitle": roadmapTitle,
		}, roadmapSchema, &roadmap)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Generate.Roadmap] Generated roadmap %q with %d topics", roadmap.Title, len(roadmap.Topics))
	return &roadmap, nil
}
