package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/internal/core"
	"github.com/learnity/backend/internal/generate"
	"github.com/learnity/backend/internal/ledger"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/internal/speech"
)

// CreateRESTHandler creates the API endpoints for the generation pipelines
func CreateRESTHandler(gen *core.GenerationCore, adminKey string) http.HandlerFunc {
	grantHandler := middleware.RequireAdminKey(adminKey, func(w http.ResponseWriter, r *http.Request) {
		handleCreditsGrant(w, r, gen)
	})

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		switch r.URL.Path {
		case "/api/course/generate":
			handleCourseGenerate(w, r, gen)
		case "/api/roadmap/generate":
			handleRoadmapGenerate(w, r, gen)
		case "/api/roadmap/save":
			handleRoadmapSave(w, r, gen)
		case "/api/roadmap/list":
			handleRoadmapList(w, r, gen)
		case "/api/roadmap/delete":
			handleRoadmapDelete(w, r, gen)
		case "/api/quiz/generate":
			handleQuizGenerate(w, r, gen)
		case "/api/voicechat":
			handleVoiceChat(w, r, gen)
		case "/api/credits":
			handleCredits(w, r, gen)
		case "/api/admin/credits/grant":
			grantHandler(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[REST] Failed to encode response: %v", err)
	}
}

// writeError maps pipeline errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	case errors.Is(err, ai.ErrSchemaValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, speech.ErrTranscriptionFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != "POST" {
		http.Error(w, `{"error": "method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func handleCourseGenerate(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID      string                `json:"userId"`
		CourseTitle string                `json:"courseTitle"`
		Chapters    []generate.ChapterRef `json:"chapters"`
		ImageURL    string                `json:"imageUrl"`
		Visibility  string                `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Visibility == "" {
		req.Visibility = "private"
	}

	result, err := gen.GenerateCourse(r.Context(), req.UserID, req.CourseTitle, req.Chapters, req.ImageURL, req.Visibility)
	if err != nil {
		log.Printf("[REST.CourseGenerate] Failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleRoadmapGenerate(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID string `json:"userId"`
		Title  string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	roadmap, err := gen.GenerateRoadmap(r.Context(), req.UserID, req.Title)
	if err != nil {
		log.Printf("[REST.RoadmapGenerate] Failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roadmap)
}

func handleRoadmapSave(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID  string           `json:"userId"`
		Roadmap generate.Roadmap `json:"roadmap"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id, err := gen.SaveRoadmap(r.Context(), req.UserID, &req.Roadmap)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func handleRoadmapList(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId query parameter is required"})
		return
	}

	roadmaps, err := gen.ListRoadmaps(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roadmaps)
}

func handleRoadmapDelete(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID    string `json:"userId"`
		RoadmapID string `json:"roadmapId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := gen.DeleteRoadmap(r.Context(), req.UserID, req.RoadmapID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func handleQuizGenerate(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID     string `json:"userId"`
		CourseID   string `json:"courseId"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(generate.DifficultyMedium)
	}

	questions, courseTitle, err := gen.GenerateQuiz(r.Context(), req.UserID, req.CourseID, generate.Difficulty(req.Difficulty))
	if err != nil {
		log.Printf("[REST.QuizGenerate] Failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"courseTitle": courseTitle,
		"questions":   questions,
	})
}

func handleVoiceChat(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	// 32 MB limit covers any reasonable voice clip
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "audio file is required"})
		return
	}
	defer file.Close()

	var turns []generate.ChatTurn
	if raw := r.FormValue("messages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &turns); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid messages payload"})
			return
		}
	}

	turn, err := gen.VoiceChat(r.Context(), r.FormValue("userId"), turns, header.Filename, file, r.FormValue("voiceMentorDescription"))
	if err != nil {
		log.Printf("[REST.VoiceChat] Failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

func handleCreditsGrant(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID string  `json:"userId"`
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId and a positive amount are required"})
		return
	}

	balance, err := gen.GrantCredits(r.Context(), req.UserID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"credits": balance})
}

func handleCredits(w http.ResponseWriter, r *http.Request, gen *core.GenerationCore) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId query parameter is required"})
		return
	}

	balance, err := gen.Credits(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"credits": balance})
}
