package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/atsresumie/latex-studio/internal/cache"
	"github.com/atsresumie/latex-studio/internal/capture"
	"github.com/atsresumie/latex-studio/internal/compiler"
	"github.com/atsresumie/latex-studio/internal/config"
	"github.com/atsresumie/latex-studio/internal/llm"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/server"
	"github.com/atsresumie/latex-studio/internal/server/middleware"
)

// newCompiler builds the compile service client with its PDF cache. The
// returned cleanup closes the cache.
func newCompiler(ctx context.Context, cfg config.Config) (*compiler.Client, func(), error) {
	if cfg.CompilerURL == "" {
		return nil, func() {}, fmt.Errorf("COMPILER_URL is required")
	}
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	pdfCache, err := cache.New(ctx, cfg.RedisURL, ttl)
	if err != nil {
		return nil, func() {}, err
	}
	client := compiler.NewClient(cfg.CompilerURL, compiler.Options{
		Timeout:  time.Duration(cfg.CompilerTimeoutSec) * time.Second,
		CacheTTL: ttl,
		Cache:    pdfCache,
	})
	return client, func() { _ = pdfCache.Close() }, nil
}

func newCapturer(cfg config.Config) *capture.Browser {
	return capture.NewBrowser(capture.Options{
		ExecPath: cfg.ChromePath,
		Timeout:  time.Duration(cfg.CaptureTimeoutSec) * time.Second,
		Scale:    cfg.CaptureScale,
	})
}

func newGenerator(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
}

// newAuth builds the guard for protected routes from JWT_SECRET and
// API_KEY_HASHES. With neither configured the routes stay open.
func newAuth() (func(http.Handler) http.Handler, error) {
	var tokens middleware.TokenValidator
	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		tokens = server.NewJWTService(jwtConfig)
	}

	var keys middleware.KeyVerifier
	keyConfig, err := config.NewAPIKeyConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create API key config: %w", err)
	}
	if keyConfig.Enabled() {
		keys = keyConfig
	}

	if tokens == nil && keys == nil {
		logging.WithComponent("serve").Warn("no JWT_SECRET or API_KEY_HASHES set; document and generation routes are unauthenticated")
		return nil, nil
	}
	return middleware.AuthMiddleware(tokens, keys), nil
}
