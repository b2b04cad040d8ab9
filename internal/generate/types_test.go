package generate_test

import (
	"testing"

	"github.com/learnity/backend/internal/generate"
)

func TestDifficulty(t *testing.T) {
	tests := []struct {
		d     generate.Difficulty
		valid bool
		count int
		cost  float64
	}{
		{generate.DifficultyEasy, true, 5, 10},
		{generate.DifficultyMedium, true, 10, 20},
		{generate.DifficultyHard, true, 15, 30},
		{"expert", false, 0, 0},
	}

	for _, tt := range tests {
		if got := tt.d.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.d, got, tt.valid)
		}
		if !tt.valid {
			continue
		}
		if got := tt.d.QuestionCount(); got != tt.count {
			t.Errorf("%q.QuestionCount() = %d, want %d", tt.d, got, tt.count)
		}
		if got := tt.d.CreditCost(); got != tt.cost {
			t.Errorf("%q.CreditCost() = %.0f, want %.0f", tt.d, got, tt.cost)
		}
	}
}

func validRaw() generate.ChapterContentRaw {
	return generate.ChapterContentRaw{
		Subtopics:            []string{"a", "b", "c"},
		SubtopicExplanations: []string{"ea", "eb", "ec"},
		YoutubeSearchQuery:   "query",
		ImageSearchTerm:      "term",
		MCQs: []generate.MCQ{
			{QuestionID: 9, Question: "q1", Options: []string{"w", "x", "y", "z"}, Answer: "w"},
			{QuestionID: 9, Question: "q2", Options: []string{"w", "x", "y", "z"}, Answer: " X "},
			{QuestionID: 9, Question: "q3", Options: []string{"w", "x", "y", "z"}, Answer: "z"},
		},
	}
}

func TestChapterContentRawValidate(t *testing.T) {
	raw := validRaw()
	if err := raw.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	for i, mcq := range raw.MCQs {
		if mcq.QuestionID != i+1 {
			t.Errorf("questionId = %d, want %d", mcq.QuestionID, i+1)
		}
	}
	if raw.MCQs[1].Answer != "x" {
		t.Errorf("answer = %q, want canonical option \"x\"", raw.MCQs[1].Answer)
	}
}

func TestChapterContentRawValidateRejects(t *testing.T) {
	t.Run("wrong subtopic count", func(t *testing.T) {
		raw := validRaw()
		raw.Subtopics = raw.Subtopics[:2]
		if err := raw.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("mismatched explanations", func(t *testing.T) {
		raw := validRaw()
		raw.SubtopicExplanations = raw.SubtopicExplanations[:2]
		if err := raw.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("empty youtube query", func(t *testing.T) {
		raw := validRaw()
		raw.YoutubeSearchQuery = ""
		if err := raw.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("answer not among options", func(t *testing.T) {
		raw := validRaw()
		raw.MCQs[0].Answer = "not an option"
		if err := raw.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("wrong option count", func(t *testing.T) {
		raw := validRaw()
		raw.MCQs[0].Options = raw.MCQs[0].Options[:3]
		if err := raw.Validate(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestRoadmapValidate(t *testing.T) {
	roadmap := generate.Roadmap{
		Title: "Go",
		Topics: []generate.RoadmapTopic{
			{Title: "Basics", Subtopics: []string{"Syntax"}},
		},
	}
	if err := roadmap.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	t.Run("no topics", func(t *testing.T) {
		r := generate.Roadmap{Title: "Go"}
		if err := r.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("topic without subtopics", func(t *testing.T) {
		r := generate.Roadmap{Title: "Go", Topics: []generate.RoadmapTopic{{Title: "Empty"}}}
		if err := r.Validate(); err == nil {
			t.Error("expected an error")
		}
	})
}
