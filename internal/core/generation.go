package core

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/learnity/backend/internal/generate"
	"github.com/learnity/backend/internal/ledger"
	"github.com/learnity/backend/internal/store"
)

// Credit costs per generation action
const (
	CourseBaseCost       = 50.0
	CoursePerChapterCost = 25.0
	RoadmapCost          = 25.0
	// Voice chat is metered per turn: rate x a fixed 10-second window
	VoiceTurnSeconds = 10.0
)

// CourseCost returns the total cost of generating a course with n chapters
func CourseCost(chapterCount int) float64 {
	return CourseBaseCost + float64(chapterCount-1)*CoursePerChapterCost
}

// ContentGenerator is the slice of the generation pipelines the core drives
type ContentGenerator interface {
	GenerateChapters(ctx context.Context, chapters []generate.ChapterRef, courseTitle string) ([]*generate.ChapterContent, error)
	GenerateCourseDescription(ctx context.Context, courseTitle string) (string, error)
	GenerateCourseImage(ctx context.Context, courseTitle string) (term, imageURL string, err error)
	GenerateRoadmap(ctx context.Context, roadmapTitle string) (*generate.Roadmap, error)
	GenerateQuiz(ctx context.Context, courseTitle, content string, difficulty generate.Difficulty) ([]generate.QuizQuestion, error)
}

// VoiceResponder answers a single voice-chat turn
type VoiceResponder interface {
	Respond(ctx context.Context, turns []generate.ChatTurn, filename string, audio io.Reader, personaDescription string) (*generate.ChatTurn, error)
}

// GenerationCore gates every pipeline behind the credit ledger: balance is
// verified before any external call, and credits are debited only after a
// successful generation. A failed generation never consumes credits.
type GenerationCore struct {
	store     store.Store
	ledger    ledger.Ledger
	generator ContentGenerator
	voice     VoiceResponder
	voiceRate float64 // credits per second of voice chat
}

// NewGenerationCore creates the credit-gated generation core
func NewGenerationCore(st store.Store, lg ledger.Ledger, gen ContentGenerator, voice VoiceResponder, voiceRate float64) *GenerationCore {
	return &GenerationCore{
		store:     st,
		ledger:    lg,
		generator: gen,
		voice:     voice,
		voiceRate: voiceRate,
	}
}

// checkBalance short-circuits with ErrInsufficientCredits before any
// external call is issued.
func (c *GenerationCore) checkBalance(ctx context.Context, userID string, cost float64) error {
	balance, err := c.ledger.Balance(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check credits: %w", err)
	}
	if balance < cost {
		return fmt.Errorf("%w: need %.0f, have %.0f", ledger.ErrInsufficientCredits, cost, balance)
	}
	return nil
}

// debitAfterSuccess settles the cost once generation succeeded. The debit
// itself re-checks the floor atomically; losing that race is logged, not
// failed, since the generated content already exists.
func (c *GenerationCore) debitAfterSuccess(ctx context.Context, userID string, cost float64, action string) {
	ok, err := c.ledger.TryDebit(ctx, userID, cost)
	if err != nil {
		log.Printf("[Core.%s] Failed to debit %.0f credits for user %s: %v", action, cost, userID, err)
		return
	}
	if !ok {
		log.Printf("[Core.%s] Balance dropped below %.0f for user %s between check and debit", action, cost, userID)
	}
}

// CourseResult is a generated and persisted course
type CourseResult struct {
	CourseID    string
	Title       string
	Description string
	ImageURL    string
	InviteCode  string
	Chapters    []*generate.ChapterContent
	ChapterIDs  []string
}

// GenerateCourse generates all chapters of a course, persists them and
// debits the cost. imageURL may be supplied by the caller; when empty an
// image is generated from the course title.
func (c *GenerationCore) GenerateCourse(ctx context.Context, userID, courseTitle string, chapters []generate.ChapterRef, imageURL, visibility string) (*CourseResult, error) {
	log.Printf("[Core.GenerateCourse] Starting - UserID: %s, Title: %q, Chapters: %d", userID, courseTitle, len(chapters))
	if strings.TrimSpace(courseTitle) == "" {
		return nil, fmt.Errorf("course title must not be empty")
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("course has no chapters")
	}

	cost := CourseCost(len(chapters))
	if err := c.checkBalance(ctx, userID, cost); err != nil {
		return nil, err
	}

	generated, err := c.generator.GenerateChapters(ctx, chapters, courseTitle)
	if err != nil {
		return nil, err
	}

	description, err := c.generator.GenerateCourseDescription(ctx, courseTitle)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		_, imageURL, err = c.generator.GenerateCourseImage(ctx, courseTitle)
		if err != nil {
			return nil, err
		}
	}

	inviteCode := newInviteCode()
	courseID, err := c.store.CreateCourse(ctx, userID, courseTitle, description, imageURL, visibility, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	chapterIDs := make([]string, 0, len(generated))
	for _, chapter := range generated {
		chapterID, err := c.store.CreateChapter(ctx, courseID, chapter)
		if err != nil {
			return nil, fmt.Errorf("failed to save chapter %q: %w", chapter.Title, err)
		}
		chapterIDs = append(chapterIDs, chapterID)
	}

	c.debitAfterSuccess(ctx, userID, cost, "GenerateCourse")
	log.Printf("[Core.GenerateCourse] Course %s created with %d chapters", courseID, len(chapterIDs))

	return &CourseResult{
		CourseID:    courseID,
		Title:       courseTitle,
		Description: description,
		ImageURL:    imageURL,
		InviteCode:  inviteCode,
		Chapters:    generated,
		ChapterIDs:  chapterIDs,
	}, nil
}

// GenerateRoadmap generates and persists a roadmap for 25 credits
func (c *GenerationCore) GenerateRoadmap(ctx context.Context, userID, roadmapTitle string) (*generate.Roadmap, error) {
	log.Printf("[Core.GenerateRoadmap] Starting - UserID: %s, Title: %q", userID, roadmapTitle)

	if err := c.checkBalance(ctx, userID, RoadmapCost); err != nil {
		return nil, err
	}

	roadmap, err := c.generator.GenerateRoadmap(ctx, roadmapTitle)
	if err != nil {
		return nil, err
	}

	c.debitAfterSuccess(ctx, userID, RoadmapCost, "GenerateRoadmap")
	return roadmap, nil
}

// GenerateQuiz generates quiz questions from the course's content excerpt.
// Fails loudly: a quiz with a wrong question count has no partial value.
func (c *GenerationCore) GenerateQuiz(ctx context.Context, userID, courseID string, difficulty generate.Difficulty) ([]generate.QuizQuestion, string, error) {
	log.Printf("[Core.GenerateQuiz] Starting - UserID: %s, Course: %s, Difficulty: %s", userID, courseID, difficulty)
	if !difficulty.Valid() {
		return nil, "", fmt.Errorf("unknown difficulty %q", difficulty)
	}

	cost := difficulty.CreditCost()
	if err := c.checkBalance(ctx, userID, cost); err != nil {
		return nil, "", err
	}

	courseTitle, err := c.store.GetCourseTitle(ctx, courseID)
	if err != nil {
		return nil, "", err
	}
	content, err := c.store.GetCourseExcerpt(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	questions, err := c.generator.GenerateQuiz(ctx, courseTitle, content, difficulty)
	if err != nil {
		return nil, "", err
	}

	c.debitAfterSuccess(ctx, userID, cost, "GenerateQuiz")
	return questions, courseTitle, nil
}

// VoiceChat answers one voice turn, metered at the per-second rate over a
// fixed window. The full prior history comes from the caller each time.
func (c *GenerationCore) VoiceChat(ctx context.Context, userID string, turns []generate.ChatTurn, filename string, audio io.Reader, personaDescription string) (*generate.ChatTurn, error) {
	cost := c.voiceRate * VoiceTurnSeconds
	if err := c.checkBalance(ctx, userID, cost); err != nil {
		return nil, err
	}

	turn, err := c.voice.Respond(ctx, turns, filename, audio, personaDescription)
	if err != nil {
		return nil, err
	}

	c.debitAfterSuccess(ctx, userID, cost, "VoiceChat")
	return turn, nil
}

// SaveRoadmap persists a roadmap the user chose to keep
func (c *GenerationCore) SaveRoadmap(ctx context.Context, userID string, roadmap *generate.Roadmap) (string, error) {
	return c.store.SaveRoadmap(ctx, userID, roadmap)
}

// ListRoadmaps returns the user's saved roadmaps
func (c *GenerationCore) ListRoadmaps(ctx context.Context, userID string) ([]*store.SavedRoadmap, error) {
	return c.store.ListRoadmaps(ctx, userID)
}

// DeleteRoadmap removes a saved roadmap
func (c *GenerationCore) DeleteRoadmap(ctx context.Context, userID, roadmapID string) error {
	return c.store.DeleteRoadmap(ctx, userID, roadmapID)
}

// Credits returns the user's current balance
func (c *GenerationCore) Credits(ctx context.Context, userID string) (float64, error) {
	return c.ledger.Balance(ctx, userID)
}

// GrantCredits adds credits to a user's balance and returns the new balance
func (c *GenerationCore) GrantCredits(ctx context.Context, userID string, amount float64) (float64, error) {
	if err := c.ledger.Credit(ctx, userID, amount); err != nil {
		return 0, fmt.Errorf("failed to grant credits: %w", err)
	}
	log.Printf("[Core.GrantCredits] Granted %.0f credits to user %s", amount, userID)
	return c.ledger.Balance(ctx, userID)
}

func newInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
