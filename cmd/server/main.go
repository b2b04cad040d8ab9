package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	appfx "github.com/learnity/backend/internal/fx"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// FX resolves the dependency graph and manages lifecycle hooks,
	// including graceful shutdown on SIGINT/SIGTERM
	app := fx.New(
		appfx.ConfigModule,   // Provides: config.Config
		appfx.StoreModule,    // Provides: *store.PostgresStore
		appfx.LedgerModule,   // Provides: ledger.Ledger, *ledger.RefillWorker
		appfx.AIModule,       // Provides: ai.Provider, *speech.Transcriber
		appfx.LookupModule,   // Provides: *youtube.VideoSearch, *youtube.TranscriptExtractor, *images.Registry
		appfx.GenerateModule, // Provides: *generate.Generator, *generate.VoiceResponder
		appfx.CoreModule,     // Provides: *core.GenerationCore
		appfx.ServerModule,   // Starts HTTP server + refill worker

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
