package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnity/backend/internal/generate"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// Pool exposes the underlying pool for collaborators sharing the database
// (the credit ledger and its refill worker).
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.db
}

func (s *PostgresStore) CreateCourse(ctx context.Context, userID, title, description, imageURL, visibility, inviteCode string) (string, error) {
	log.Printf("[Store.CreateCourse] Inserting course - UserID: %s, Title: %s", userID, title)
	query := `
        INSERT INTO courses (user_id, title, description, image_url, visibility, invite_code)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id;
    `
	var courseID string
	err := s.db.QueryRow(ctx, query, userID, title, description, imageURL, visibility, inviteCode).Scan(&courseID)
	if err != nil {
		log.Printf("[Store.CreateCourse] Insert failed: %v", err)
		return "", fmt.Errorf("failed to insert course: %w", err)
	}
	return courseID, nil
}

func (s *PostgresStore) CreateChapter(ctx context.Context, courseID string, chapter *generate.ChapterContent) (string, error) {
	mcqs, err := json.Marshal(chapter.MCQs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mcqs: %w", err)
	}
	query := `
        INSERT INTO chapters (course_id, title, subtopics, subtopic_explanations, youtube_search_query, video_id, summary, mcqs)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id;
    `
	var chapterID string
	err = s.db.QueryRow(ctx, query, courseID, chapter.Title, chapter.Subtopics,
		chapter.SubtopicExplanations, chapter.YoutubeSearchQuery, chapter.VideoID,
		chapter.Summary, mcqs).Scan(&chapterID)
	if err != nil {
		return "", fmt.Errorf("failed to insert chapter: %w", err)
	}
	return chapterID, nil
}

func (s *PostgresStore) GetCourseTitle(ctx context.Context, courseID string) (string, error) {
	var title string
	err := s.db.QueryRow(ctx, `SELECT title FROM courses WHERE id = $1`, courseID).Scan(&title)
	if err != nil {
		return "", fmt.Errorf("failed to get course: %w", err)
	}
	return title, nil
}

func (s *PostgresStore) GetCourseExcerpt(ctx context.Context, courseID string) (string, error) {
	query := `
        SELECT title, subtopics FROM chapters
        WHERE course_id = $1
        ORDER BY id
        LIMIT 3;
    `
	rows, err := s.db.Query(ctx, query, courseID)
	if err != nil {
		return "", fmt.Errorf("failed to get chapters: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var title string
		var subtopics []string
		if err := rows.Scan(&title, &subtopics); err != nil {
			return "", fmt.Errorf("failed to scan chapter: %w", err)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", title, strings.Join(subtopics, ", ")))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read chapters: %w", err)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("course %s has no chapters", courseID)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *PostgresStore) SaveRoadmap(ctx context.Context, userID string, roadmap *generate.Roadmap) (string, error) {
	payload, err := json.Marshal(roadmap)
	if err != nil {
		return "", fmt.Errorf("failed to marshal roadmap: %w", err)
	}
	var roadmapID string
	err = s.db.QueryRow(ctx,
		`INSERT INTO roadmaps (user_id, title, roadmap) VALUES ($1, $2, $3) RETURNING id`,
		userID, roadmap.Title, payload).Scan(&roadmapID)
	if err != nil {
		return "", fmt.Errorf("failed to insert roadmap: %w", err)
	}
	return roadmapID, nil
}

func (s *PostgresStore) ListRoadmaps(ctx context.Context, userID string) ([]*SavedRoadmap, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, roadmap FROM roadmaps WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	defer rows.Close()

	var saved []*SavedRoadmap
	for rows.Next() {
		r := &SavedRoadmap{UserID: userID}
		var payload []byte
		if err := rows.Scan(&r.ID, &r.Title, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap: %w", err)
		}
		if err := json.Unmarshal(payload, &r.Roadmap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roadmap %s: %w", r.ID, err)
		}
		saved = append(saved, r)
	}
	return saved, rows.Err()
}

func (s *PostgresStore) DeleteRoadmap(ctx context.Context, userID, roadmapID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM roadmaps WHERE id = $1 AND user_id = $2`, roadmapID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete roadmap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roadmap not found")
	}
	return nil
}
