package generate

import (
	"fmt"
	"strings"
)

// Difficulty selects quiz length and credit cost
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionCount returns the number of quiz questions for the difficulty
func (d Difficulty) QuestionCount() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 15
	default:
		return 10
	}
}

// CreditCost returns the quiz generation cost for the difficulty
func (d Difficulty) CreditCost() float64 {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 30
	default:
		return 20
	}
}

// ChapterRef identifies one chapter within a course outline
type ChapterRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// MCQ is a multiple-choice question tied to a subtopic
type MCQ struct {
	QuestionID int      `json:"questionId"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

// normalizeAnswer matches the answer against the options, trimmed and
// case-insensitive, and rewrites it to the canonical option text.
// An answer matching no option is a schema violation.
func (m *MCQ) normalizeAnswer() error {
	if len(m.Options) != 4 {
		return fmt.Errorf("mcq %q has %d options, want 4", m.Question, len(m.Options))
	}
	want := strings.ToLower(strings.TrimSpace(m.Answer))
	for _, opt := range m.Options {
		if strings.ToLower(strings.TrimSpace(opt)) == want {
			m.Answer = opt
			return nil
		}
	}
	return fmt.Errorf("mcq %q answer %q is not one of the options", m.Question, m.Answer)
}

// ChapterContentRaw is the comprehensive generation output before external
// lookups resolve search terms into concrete resources.
type ChapterContentRaw struct {
	Subtopics            []string `json:"subtopics"`
	SubtopicExplanations []string `json:"subtopicExplanations"`
	YoutubeSearchQuery   string   `json:"youtubeSearchQuery"`
	CourseDescription    string   `json:"courseDescription"`
	ImageSearchTerm      string   `json:"imageSearchTerm"`
	MCQs                 []MCQ    `json:"mcqs"`
}

// Validate enforces the chapter schema invariants and repairs what can be
// repaired: question ids are renumbered sequentially, answers are
// normalized to their matching option.
func (c *ChapterContentRaw) Validate() error {
	if len(c.Subtopics) != 3 {
		return fmt.Errorf("got %d subtopics, want 3", len(c.Subtopics))
	}
	if len(c.SubtopicExplanations) != len(c.Subtopics) {
		return fmt.Errorf("got %d explanations for %d subtopics", len(c.SubtopicExplanations), len(c.Subtopics))
	}
	if len(c.MCQs) != len(c.Subtopics) {
		return fmt.Errorf("got %d mcqs for %d subtopics", len(c.MCQs), len(c.Subtopics))
	}
	if c.YoutubeSearchQuery == "" {
		return fmt.Errorf("empty youtubeSearchQuery")
	}
	if c.ImageSearchTerm == "" {
		return fmt.Errorf("empty imageSearchTerm")
	}
	for i := range c.MCQs {
		c.MCQs[i].QuestionID = i + 1
		if err := c.MCQs[i].normalizeAnswer(); err != nil {
			return err
		}
	}
	return nil
}

// ChapterContent is the fully resolved chapter: search terms replaced by a
// concrete video id, transcript summary and image URL. Never mutated after
// assembly.
type ChapterContent struct {
	Title                string   `json:"title"`
	Subtopics            []string `json:"subtopics"`
	SubtopicExplanations []string `json:"subtopicExplanations"`
	YoutubeSearchQuery   string   `json:"youtubeSearchQuery"`
	VideoID              string   `json:"videoId"`
	Summary              string   `json:"summary"`
	Description          string   `json:"description"`
	ImageSearchTerm      string   `json:"imageSearchTerm"`
	ImageURL             string   `json:"imageUrl"`
	MCQs                 []MCQ    `json:"mcqs"`
}

// RoadmapTopic is one node of a learning roadmap
type RoadmapTopic struct {
	Title     string   `json:"title"`
	Subtopics []string `json:"subtopics"`
}

// Roadmap is a hierarchical topic/subtopic tree for a subject
type Roadmap struct {
	Title  string         `json:"title"`
	Topics []RoadmapTopic `json:"topics"`
}

// Validate rejects roadmaps with empty titles or topics without subtopics
func (r *Roadmap) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("empty roadmap title")
	}
	if len(r.Topics) == 0 {
		return fmt.Errorf("roadmap has no topics")
	}
	for i, t := range r.Topics {
		if t.Title == "" {
			return fmt.Errorf("topic %d has an empty title", i+1)
		}
		if len(t.Subtopics) == 0 {
			return fmt.Errorf("topic %q has no subtopics", t.Title)
		}
	}
	return nil
}

// QuizQuestion is one course quiz question with an indexed correct answer
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type quizOutput struct {
	Questions []QuizQuestion `json:"questions"`
}

// Validate enforces per-question quiz invariants; the question count is
// checked by the caller, which knows the requested difficulty.
func (q *quizOutput) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, question := range q.Questions {
		if question.Question == "" {
			return fmt.Errorf("question %d is empty", i+1)
		}
		if len(question.Options) != 4 {
			return fmt.Errorf("question %d has %d options, want 4", i+1, len(question.Options))
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer > 3 {
			return fmt.Errorf("question %d correctAnswer %d out of range [0,3]", i+1, question.CorrectAnswer)
		}
	}
	return nil
}

// ChatTurn is one voice-chat exchange: the transcribed user utterance and
// the mentor's reply
type ChatTurn struct {
	Sender   string `json:"sender"`
	Response string `json:"response"`
	ID       string `json:"id"`
}

// single-field outputs used by the legacy multi-call path and summaries

type subtopicsOutput struct {
	Subtopics []string `json:"subtopics"`
}

func (s *subtopicsOutput) Validate() error {
	if len(s.Subtopics) != 3 {
		return fmt.Errorf("got %d subtopics, want 3", len(s.Subtopics))
	}
	return nil
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
}

func (e *explanationOutput) Validate() error {
	if e.Explanation == "" {
		return fmt.Errorf("empty explanation")
	}
	return nil
}

type youtubeQueryOutput struct {
	YoutubeSearchQuery string `json:"youtubeSearchQuery"`
}

func (y *youtubeQueryOutput) Validate() error {
	if y.YoutubeSearchQuery == "" {
		return fmt.Errorf("empty youtubeSearchQuery")
	}
	return nil
}

type descriptionOutput struct {
	Description string `json:"description"`
}

func (d *descriptionOutput) Validate() error {
	if d.Description == "" {
		return fmt.Errorf("empty description")
	}
	return nil
}

type imageTermOutput struct {
	ImageSearchTerm string `json:"imageSearchTerm"`
}

func (i *imageTermOutput) Validate() error {
	if i.ImageSearchTerm == "" {
		return fmt.Errorf("empty imageSearchTerm")
	}
	return nil
}

type mcqOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type summaryOutput struct {
	Summary string `json:"summary"`
}

func (s *summaryOutput) Validate() error {
	if s.Summary == "" {
		return fmt.Errorf("empty summary")
	}
	return nil
}
