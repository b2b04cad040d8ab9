package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL      string
	GroqAPIKey       string
	CerebrasAPIKey   string
	GeminiAPIKey     string
	YouTubeAPIKey    string
	UnsplashAPIKey   string
	SerpAPIKey       string
	HTTPPort         int
	AdminAPIKey      string
	FreeCreditFloor  float64
	VoiceCreditsRate float64
	Strategy         string
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/learnity?sslmode=disable"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		CerebrasAPIKey:   os.Getenv("CEREBRAS_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		UnsplashAPIKey:   os.Getenv("UNSPLASH_API_KEY"),
		SerpAPIKey:       os.Getenv("SERPAPI_API_KEY"),
		AdminAPIKey:      os.Getenv("ADMIN_API_KEY"),
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		FreeCreditFloor:  getEnvFloat("FREE_CREDIT_FLOOR", 100),
		VoiceCreditsRate: getEnvFloat("VOICE_CREDITS_PER_SECOND", 0.5),
		Strategy:         getEnv("GENERATION_STRATEGY", "optimized"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
