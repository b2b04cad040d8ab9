package store

import (
	"context"

	"github.com/learnity/backend/internal/generate"
)

// Course is a persisted generated course
type Course struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Visibility  string
	InviteCode  string
	UserID      string
}

// SavedRoadmap is a persisted roadmap tree
type SavedRoadmap struct {
	ID     string
	UserID string
	Title  string
	// Roadmap is the serialized topic tree
	Roadmap generate.Roadmap
}

type Store interface {
	// Course
	CreateCourse(ctx context.Context, userID, title, description, imageURL, visibility, inviteCode string) (string, error)
	CreateChapter(ctx context.Context, courseID string, chapter *generate.ChapterContent) (string, error)
	GetCourseTitle(ctx context.Context, courseID string) (string, error)
	// GetCourseExcerpt concatenates the first 3 chapters' titles and
	// subtopics, the content a quiz is generated from.
	GetCourseExcerpt(ctx context.Context, courseID string) (string, error)

	// Roadmap
	SaveRoadmap(ctx context.Context, userID string, roadmap *generate.Roadmap) (string, error)
	ListRoadmaps(ctx context.Context, userID string) ([]*SavedRoadmap, error)
	DeleteRoadmap(ctx context.Context, userID, roadmapID string) error

	// General
	Close()
}
