package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/skinai/internal/http/v1/routes"
	"github.com/janisto/skinai/internal/platform/config"
	"github.com/janisto/skinai/internal/platform/logging"
	appmiddleware "github.com/janisto/skinai/internal/platform/middleware"
	"github.com/janisto/skinai/internal/platform/respond"
	"github.com/janisto/skinai/internal/service/analysis"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.LogError(context.Background(), "config load failed", err)
		os.Exit(1)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.LogWarn(context.Background(), "ignoring log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}

	model := newModel(cfg)
	if cfg.APIKey() == "" {
		logging.LogWarn(context.Background(), "model API key not set; analysis requests will fail",
			zap.String("provider", cfg.Provider))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, analysis.NewAnalyzer(model)),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr), zap.String("model", model.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		logging.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.LogError(ctx, "server shutdown error", err)
	}
	logging.LogInfo(context.Background(), "server exited")
}

// newModel builds the configured provider's model client.
func newModel(cfg *config.Config) analysis.Model {
	if cfg.Provider == config.ProviderGemini {
		return analysis.NewGemini(cfg.GeminiAPIKey, cfg.ModelID, cfg.RequestTimeout)
	}
	return analysis.NewAnthropic(
		&http.Client{Timeout: cfg.RequestTimeout},
		analysis.WithAnthropicBaseURL(cfg.AnthropicBaseURL),
		analysis.WithAnthropicAPIKey(cfg.AnthropicAPIKey),
		analysis.WithAnthropicModel(cfg.ModelID),
	)
}

func newRouter(cfg *config.Config, svc analysis.Service) http.Handler {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		chimiddleware.RealIP,
		// Selfies arrive base64-encoded inside the JSON body.
		chimiddleware.RequestSize(cfg.MaxBodyBytes),
		logging.RequestLogger(),
		logging.AccessLogger(),
		respond.Recoverer(),
	)

	humaCfg := huma.DefaultConfig("SkinAI API", Version)
	humaCfg.DocsPath = "/api-docs"
	// Huma falls back to JSON for Accept headers it cannot match exactly (e.g. */* or text/plain),
	// which RFC 9110 section 12.4.1 permits.
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)

	routes.Register(api, routes.Deps{
		Analysis:     svc,
		Provider:     cfg.Provider,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	return router
}

func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
