package models

const (
	// === Groq Models ===
	ModelGroqLlama3_1_8b  = "llama-3.1-8b-instant"
	ModelGroqLlama3_3_70b = "llama-3.3-70b-versatile"
	ModelGroqGptOss120b   = "openai/gpt-oss-120b"
	ModelGroqGptOss20b    = "openai/gpt-oss-20b"
	ModelGroqWhisper      = "whisper-large-v3"
	ModelGroqWhisperTurbo = "whisper-large-v3-turbo"

	// === Cerebras Models ===
	ModelCerebrasGptOss120b   = "gpt-oss-120b"
	ModelCerebrasLlama3_3_70b = "llama-3.3-70b"

	// === Gemini Models ===
	ModelGeminiFlash = "gemini-2.0-flash"
)

const (
	// === Task-Specific Default Models ===

	// TaskChapterModel: large structured JSON generation in one shot.
	TaskChapterModel = ModelGroqGptOss120b

	// TaskRoadmapModel: hierarchical structured output.
	TaskRoadmapModel = ModelGroqGptOss120b

	// TaskQuizModel: structured JSON generation.
	TaskQuizModel = ModelGroqGptOss120b

	// TaskSummaryModel: high context, instruction following.
	TaskSummaryModel = ModelGroqGptOss120b

	// TaskVoiceChatModel: conversational prose for TTS.
	TaskVoiceChatModel = ModelGroqGptOss120b

	// TaskTranscriptionModel: speech to text.
	TaskTranscriptionModel = ModelGroqWhisperTurbo
)
