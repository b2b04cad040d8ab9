package fx

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/learnity/backend/internal/config"
	"github.com/learnity/backend/internal/core"
	"github.com/learnity/backend/internal/ledger"
	"github.com/learnity/backend/internal/server"
)

// ServerModule starts the HTTP server and background workers
var ServerModule = fx.Module("server",
	fx.Invoke(
		StartHTTPServer,
		StartRefillWorker,
	),
)

// HTTPServerParams groups dependencies for the HTTP server
type HTTPServerParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Core      *core.GenerationCore
	Config    config.Config
}

// StartHTTPServer starts the REST server with lifecycle management
func StartHTTPServer(p HTTPServerParams) {
	handler := server.CreateRecoveryHandler(server.CreateRESTHandler(p.Core, p.Config.AdminAPIKey))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", p.Config.HTTPPort),
		Handler: handler,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("[FX] HTTP Server listening on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// RefillWorkerParams groups dependencies for the refill worker
type RefillWorkerParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Worker    *ledger.RefillWorker
}

// StartRefillWorker starts the daily credit refill worker
func StartRefillWorker(p RefillWorkerParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			return nil
		},
	})
}
