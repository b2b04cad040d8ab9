package fx

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/learnity/backend/internal/ai"
	"github.com/learnity/backend/internal/ai/models"
	"github.com/learnity/backend/internal/config"
	"github.com/learnity/backend/internal/core"
	"github.com/learnity/backend/internal/generate"
	"github.com/learnity/backend/internal/images"
	"github.com/learnity/backend/internal/ledger"
	"github.com/learnity/backend/internal/speech"
	"github.com/learnity/backend/internal/store"
	"github.com/learnity/backend/internal/youtube"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// StoreModule provides database connectivity
var StoreModule = fx.Module("store",
	fx.Provide(NewPostgresStore),
)

// LedgerModule provides the credit ledger and refill worker
var LedgerModule = fx.Module("ledger",
	fx.Provide(
		NewLedger,
		NewRefillWorker,
	),
)

// AIModule provides the LLM provider chain and transcriber
var AIModule = fx.Module("ai",
	fx.Provide(
		NewLLMProvider,
		NewTranscriber,
	),
)

// LookupModule provides the external lookup services
var LookupModule = fx.Module("lookup",
	fx.Provide(
		NewVideoSearch,
		NewTranscriptExtractor,
		NewImageRegistry,
	),
)

// GenerateModule provides the content generation pipelines
var GenerateModule = fx.Module("generate",
	fx.Provide(
		NewGenerator,
		NewVoiceResponder,
	),
)

// CoreModule provides the credit-gated generation core
var CoreModule = fx.Module("core",
	fx.Provide(NewGenerationCore),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewPostgresStore creates database connection
func NewPostgresStore(cfg config.Config) (*store.PostgresStore, error) {
	st, err := store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] PostgresStore initialized")
	return st, nil
}

// NewLedger creates the postgres-backed credit ledger
func NewLedger(st *store.PostgresStore) ledger.Ledger {
	lg := ledger.NewPostgresLedger(st.Pool())
	log.Printf("[FX] Ledger initialized")
	return lg
}

// NewRefillWorker creates the daily credit refill worker
func NewRefillWorker(st *store.PostgresStore, cfg config.Config) *ledger.RefillWorker {
	worker := ledger.NewRefillWorker(st.Pool(), cfg.FreeCreditFloor)
	log.Printf("[FX] RefillWorker initialized")
	return worker
}

// NewLLMProvider builds the provider fallback chain from configured keys
func NewLLMProvider(cfg config.Config) ai.Provider {
	var providers []ai.Provider

	if cfg.GroqAPIKey != "" {
		providers = append(providers, ai.NewLLMProvider("groq", cfg.GroqAPIKey, models.TaskChapterModel))
	}
	if cfg.CerebrasAPIKey != "" {
		providers = append(providers, ai.NewLLMProvider("cerebras", cfg.CerebrasAPIKey, models.TaskChapterModel))
	}
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, ai.NewLLMProvider("gemini", cfg.GeminiAPIKey, models.ModelGeminiFlash))
	}

	switch len(providers) {
	case 0:
		log.Fatal("[FX] No AI provider configured. Set GROQ_API_KEY, CEREBRAS_API_KEY or GEMINI_API_KEY")
		return nil
	case 1:
		log.Printf("[FX] LLMProvider initialized (%s)", providers[0].Name())
		return providers[0]
	default:
		multi := ai.NewMultiProvider(providers...)
		log.Printf("[FX] LLMProvider initialized (%s)", multi.Name())
		return multi
	}
}

// NewTranscriber creates the speech-to-text client
func NewTranscriber(cfg config.Config) *speech.Transcriber {
	t := speech.NewTranscriber(cfg.GroqAPIKey, models.TaskTranscriptionModel)
	log.Printf("[FX] Transcriber initialized")
	return t
}

// NewVideoSearch creates the YouTube search client
func NewVideoSearch(cfg config.Config) (*youtube.VideoSearch, error) {
	vs, err := youtube.NewVideoSearch(cfg.YouTubeAPIKey)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] VideoSearch initialized")
	return vs, nil
}

// NewTranscriptExtractor creates the caption extractor
func NewTranscriptExtractor() *youtube.TranscriptExtractor {
	log.Printf("[FX] TranscriptExtractor initialized")
	return youtube.NewTranscriptExtractor()
}

// NewImageRegistry creates the image provider registry
func NewImageRegistry(cfg config.Config) *images.Registry {
	registry := images.NewRegistry()

	if cfg.UnsplashAPIKey != "" {
		registry.Register(images.NewUnsplashClient(cfg.UnsplashAPIKey))
		log.Printf("[FX] ImageRegistry: Unsplash registered")
	}
	if cfg.SerpAPIKey != "" {
		registry.Register(images.NewSerpAPIClient(cfg.SerpAPIKey))
		log.Printf("[FX] ImageRegistry: SerpApi registered")
	}

	log.Printf("[FX] ImageRegistry initialized with %d providers", registry.Count())
	return registry
}

// NewGenerator creates the content generator with the configured strategy
func NewGenerator(llm ai.Provider, vs *youtube.VideoSearch, te *youtube.TranscriptExtractor, reg *images.Registry, cfg config.Config) *generate.Generator {
	gen := generate.NewGenerator(llm, vs, te, reg, generate.Strategy(cfg.Strategy))
	log.Printf("[FX] Generator initialized (strategy: %s)", gen.Strategy())
	return gen
}

// NewVoiceResponder creates the voice chat responder
func NewVoiceResponder(llm ai.Provider, t *speech.Transcriber) *generate.VoiceResponder {
	vr := generate.NewVoiceResponder(llm, t)
	log.Printf("[FX] VoiceResponder initialized")
	return vr
}

// NewGenerationCore creates the credit-gated generation core
func NewGenerationCore(st *store.PostgresStore, lg ledger.Ledger, gen *generate.Generator, vr *generate.VoiceResponder, cfg config.Config) *core.GenerationCore {
	c := core.NewGenerationCore(st, lg, gen, vr, cfg.VoiceCreditsRate)
	log.Printf("[FX] GenerationCore initialized")
	return c
}
