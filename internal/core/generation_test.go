package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/learnity/backend/internal/core"
	"github.com/learnity/backend/internal/generate"
	"github.com/learnity/backend/internal/ledger"
	"github.com/learnity/backend/internal/store"
)

// MockLedger keeps balances in memory
type MockLedger struct {
	balances map[string]float64
	debits   []float64
}

func NewMockLedger(userID string, balance float64) *MockLedger {
	return &MockLedger{balances: map[string]float64{userID: balance}}
}

func (m *MockLedger) Balance(ctx context.Context, userID string) (float64, error) {
	return m.balances[userID], nil
}

func (m *MockLedger) TryDebit(ctx context.Context, userID string, amount float64) (bool, error) {
	if m.balances[userID] < amount {
		return false, nil
	}
	m.balances[userID] -= amount
	m.debits = append(m.debits, amount)
	return true, nil
}

func (m *MockLedger) Credit(ctx context.Context, userID string, amount float64) error {
	m.balances[userID] += amount
	return nil
}

// MockStore records persisted entities
type MockStore struct {
	courses  []store.Course
	chapters []*generate.ChapterContent
	roadmaps map[string]*store.SavedRoadmap
	excerpt  string
	title    string
}

func NewMockStore() *MockStore {
	return &MockStore{
		roadmaps: map[string]*store.SavedRoadmap{},
		excerpt:  "Basics: Syntax, Types",
		title:    "Learn Go",
	}
}

func (m *MockStore) CreateCourse(ctx context.Context, userID, title, description, imageURL, visibility, inviteCode string) (string, error) {
	m.courses = append(m.courses, store.Course{
		ID: fmt.Sprintf("course-%d", len(m.courses)+1), UserID: userID, Title: title,
		Description: description, ImageURL: imageURL, Visibility: visibility, InviteCode: inviteCode,
	})
	return m.courses[len(m.courses)-1].ID, nil
}

func (m *MockStore) CreateChapter(ctx context.Context, courseID string, chapter *generate.ChapterContent) (string, error) {
	m.chapters = append(m.chapters, chapter)
	return fmt.Sprintf("chapter-%d", len(m.chapters)), nil
}

func (m *MockStore) GetCourseTitle(ctx context.Context, courseID string) (string, error) {
	return m.title, nil
}

func (m *MockStore) GetCourseExcerpt(ctx context.Context, courseID string) (string, error) {
	return m.excerpt, nil
}

func (m *MockStore) SaveRoadmap(ctx context.Context, userID string, roadmap *generate.Roadmap) (string, error) {
	id := fmt.Sprintf("roadmap-%d", len(m.roadmaps)+1)
	m.roadmaps[id] = &store.SavedRoadmap{ID: id, UserID: userID, Title: roadmap.Title, Roadmap: *roadmap}
	return id, nil
}

func (m *MockStore) ListRoadmaps(ctx context.Context, userID string) ([]*store.SavedRoadmap, error) {
	var out []*store.SavedRoadmap
	for _, r := range m.roadmaps {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockStore) DeleteRoadmap(ctx context.Context, userID, roadmapID string) error {
	delete(m.roadmaps, roadmapID)
	return nil
}

func (m *MockStore) Close() {}

// MockGenerator counts invocations so tests can prove no generation ran
type MockGenerator struct {
	calls int
}

func (m *MockGenerator) GenerateChapters(ctx context.Context, chapters []generate.ChapterRef, courseTitle string) ([]*generate.ChapterContent, error) {
	m.calls++
	out := make([]*generate.ChapterContent, len(chapters))
	for i, ch := range chapters {
		out[i] = &generate.ChapterContent{Title: ch.Title, Subtopics: []string{"a", "b", "c"}}
	}
	return out, nil
}

func (m *MockGenerator) GenerateCourseDescription(ctx context.Context, courseTitle string) (string, error) {
	m.calls++
	return "A course about " + courseTitle, nil
}

func (m *MockGenerator) GenerateCourseImage(ctx context.Context, courseTitle string) (string, string, error) {
	m.calls++
	return "term", "https://images.example/cover.jpg", nil
}

func (m *MockGenerator) GenerateRoadmap(ctx context.Context, roadmapTitle string) (*generate.Roadmap, error) {
	m.calls++
	return &generate.Roadmap{
		Title:  roadmapTitle,
		Topics: []generate.RoadmapTopic{{Title: "Basics", Subtopics: []string{"Syntax"}}},
	}, nil
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, courseTitle, content string, difficulty generate.Difficulty) ([]generate.QuizQuestion, error) {
	m.calls++
	questions := make([]generate.QuizQuestion, difficulty.QuestionCount())
	for i := range questions {
		questions[i] = generate.QuizQuestion{
			Question: fmt.Sprintf("Q%d?", i+1), Options: []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4, Explanation: "Because.",
		}
	}
	return questions, nil
}

// MockVoice answers voice turns without external calls
type MockVoice struct {
	calls int
}

func (m *MockVoice) Respond(ctx context.Context, turns []generate.ChatTurn, filename string, audio io.Reader, personaDescription string) (*generate.ChatTurn, error) {
	m.calls++
	return &generate.ChatTurn{Sender: "transcribed", Response: "reply", ID: "turn-1"}, nil
}

func newTestCore(balance float64) (*core.GenerationCore, *MockStore, *MockLedger, *MockGenerator, *MockVoice) {
	st := NewMockStore()
	lg := NewMockLedger("user-1", balance)
	gen := &MockGenerator{}
	voice := &MockVoice{}
	return core.NewGenerationCore(st, lg, gen, voice, 0.5), st, lg, gen, voice
}

func TestCourseCost(t *testing.T) {
	tests := []struct {
		chapters int
		want     float64
	}{
		{1, 50},
		{2, 75},
		{5, 150},
	}
	for _, tt := range tests {
		if got := core.CourseCost(tt.chapters); got != tt.want {
			t.Errorf("CourseCost(%d) = %.0f, want %.0f", tt.chapters, got, tt.want)
		}
	}
}

func TestGenerateCourseDebitsAfterSuccess(t *testing.T) {
	c, st, lg, _, _ := newTestCore(200)

	outline := []generate.ChapterRef{{ID: 1, Title: "Basics"}, {ID: 2, Title: "Concurrency"}}
	result, err := c.GenerateCourse(context.Background(), "user-1", "Learn Go", outline, "", "private")
	if err != nil {
		t.Fatalf("GenerateCourse failed: %v", err)
	}

	if got, _ := lg.Balance(context.Background(), "user-1"); got != 125 {
		t.Errorf("balance = %.0f, want 125 (200 - 75)", got)
	}
	if len(st.courses) != 1 {
		t.Fatalf("courses persisted = %d, want 1", len(st.courses))
	}
	if len(st.chapters) != 2 {
		t.Errorf("chapters persisted = %d, want 2", len(st.chapters))
	}
	if len(result.InviteCode) != 10 {
		t.Errorf("invite code = %q, want 10 characters", result.InviteCode)
	}
	if result.ImageURL == "" {
		t.Error("image URL missing when none was supplied")
	}
}

func TestGenerateCourseInsufficientCredits(t *testing.T) {
	c, st, lg, gen, _ := newTestCore(10)

	_, err := c.GenerateCourse(context.Background(), "user-1", "Learn Go", []generate.ChapterRef{{ID: 1, Title: "Basics"}}, "", "private")
	if !errors.Is(err, ledger.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want ErrInsufficientCredits", err)
	}

	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0 when credits are insufficient", gen.calls)
	}
	if len(st.courses) != 0 {
		t.Error("nothing must be persisted on a rejected request")
	}
	if got, _ := lg.Balance(context.Background(), "user-1"); got != 10 {
		t.Errorf("balance = %.0f, want untouched 10", got)
	}
}

func TestGenerateCourseKeepsSuppliedImage(t *testing.T) {
	c, st, _, _, _ := newTestCore(200)

	result, err := c.GenerateCourse(context.Background(), "user-1", "Learn Go",
		[]generate.ChapterRef{{ID: 1, Title: "Basics"}}, "https://user.example/own.jpg", "public")
	if err != nil {
		t.Fatalf("GenerateCourse failed: %v", err)
	}
	if result.ImageURL != "https://user.example/own.jpg" {
		t.Errorf("imageUrl = %q, want the caller's URL", result.ImageURL)
	}
	if st.courses[0].Visibility != "public" {
		t.Errorf("visibility = %q, want public", st.courses[0].Visibility)
	}
}

func TestGenerateRoadmapCost(t *testing.T) {
	c, _, lg, _, _ := newTestCore(30)

	roadmap, err := c.GenerateRoadmap(context.Background(), "user-1", "Go")
	if err != nil {
		t.Fatalf("GenerateRoadmap failed: %v", err)
	}
	if roadmap.Title != "Go" {
		t.Errorf("title = %q", roadmap.Title)
	}
	if got, _ := lg.Balance(context.Background(), "user-1"); got != 5 {
		t.Errorf("balance = %.0f, want 5 (30 - 25)", got)
	}
}

func TestGenerateRoadmapInsufficientCredits(t *testing.T) {
	c, _, _, gen, _ := newTestCore(24)

	_, err := c.GenerateRoadmap(context.Background(), "user-1", "Go")
	if !errors.Is(err, ledger.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want ErrInsufficientCredits", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestGenerateQuizCostsByDifficulty(t *testing.T) {
	tests := []struct {
		difficulty generate.Difficulty
		cost       float64
	}{
		{generate.DifficultyEasy, 10},
		{generate.DifficultyMedium, 20},
		{generate.DifficultyHard, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			c, _, lg, _, _ := newTestCore(100)

			questions, courseTitle, err := c.GenerateQuiz(context.Background(), "user-1", "course-1", tt.difficulty)
			if err != nil {
				t.Fatalf("GenerateQuiz failed: %v", err)
			}
			if len(questions) != tt.difficulty.QuestionCount() {
				t.Errorf("questions = %d, want %d", len(questions), tt.difficulty.QuestionCount())
			}
			if courseTitle != "Learn Go" {
				t.Errorf("courseTitle = %q", courseTitle)
			}
			if got, _ := lg.Balance(context.Background(), "user-1"); got != 100-tt.cost {
				t.Errorf("balance = %.0f, want %.0f", got, 100-tt.cost)
			}
		})
	}
}

func TestGenerateQuizUnknownDifficulty(t *testing.T) {
	c, _, _, gen, _ := newTestCore(100)

	if _, _, err := c.GenerateQuiz(context.Background(), "user-1", "course-1", "brutal"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestVoiceChatMetering(t *testing.T) {
	c, _, lg, _, voice := newTestCore(20)

	turn, err := c.VoiceChat(context.Background(), "user-1", nil, "clip.webm", strings.NewReader("audio"), "mentor")
	if err != nil {
		t.Fatalf("VoiceChat failed: %v", err)
	}
	if turn.Response != "reply" {
		t.Errorf("response = %q", turn.Response)
	}
	if voice.calls != 1 {
		t.Errorf("voice calls = %d, want 1", voice.calls)
	}
	// 0.5 credits/second over a 10 second window
	if got, _ := lg.Balance(context.Background(), "user-1"); got != 15 {
		t.Errorf("balance = %.0f, want 15", got)
	}
}

func TestVoiceChatInsufficientCredits(t *testing.T) {
	c, _, _, _, voice := newTestCore(4)

	_, err := c.VoiceChat(context.Background(), "user-1", nil, "clip.webm", strings.NewReader("audio"), "mentor")
	if !errors.Is(err, ledger.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want ErrInsufficientCredits", err)
	}
	if voice.calls != 0 {
		t.Errorf("voice calls = %d, want 0", voice.calls)
	}
}

func TestRoadmapPersistence(t *testing.T) {
	c, _, _, _, _ := newTestCore(100)

	roadmap := &generate.Roadmap{
		Title:  "Go",
		Topics: []generate.RoadmapTopic{{Title: "Basics", Subtopics: []string{"Syntax"}}},
	}
	id, err := c.SaveRoadmap(context.Background(), "user-1", roadmap)
	if err != nil {
		t.Fatalf("SaveRoadmap failed: %v", err)
	}

	saved, err := c.ListRoadmaps(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListRoadmaps failed: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != id {
		t.Fatalf("saved roadmaps = %v", saved)
	}

	if err := c.DeleteRoadmap(context.Background(), "user-1", id); err != nil {
		t.Fatalf("DeleteRoadmap failed: %v", err)
	}
	saved, _ = c.ListRoadmaps(context.Background(), "user-1")
	if len(saved) != 0 {
		t.Errorf("roadmaps after delete = %d, want 0", len(saved))
	}
}

func TestGrantCredits(t *testing.T) {
	c, _, _, _, _ := newTestCore(10)

	balance, err := c.GrantCredits(context.Background(), "user-1", 40)
	if err != nil {
		t.Fatalf("GrantCredits failed: %v", err)
	}
	if balance != 50 {
		t.Errorf("balance = %.0f, want 50", balance)
	}
}
