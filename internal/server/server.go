package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/atsresumie/latex-studio/internal/compiler"
	"github.com/atsresumie/latex-studio/internal/db"
	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/llm"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/server/ratelimit"
	"github.com/atsresumie/latex-studio/internal/types"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 5 << 20

// CompileService compiles styled LaTeX into a PDF
type CompileService interface {
	CompileWithInfo(ctx context.Context, latex string) (*compiler.Result, error)
}

// DocumentStore persists versioned LaTeX documents
type DocumentStore interface {
	CreateDocument(ctx context.Context, label, latex string, style types.StyleConfig) (*db.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*db.Document, error)
	SaveDocumentVersion(ctx context.Context, id uuid.UUID, latex string, style types.StyleConfig) (*db.Document, error)
	ListDocumentVersions(ctx context.Context, id uuid.UUID) ([]db.DocumentVersion, error)
}

// Config holds the server's collaborators. Nil collaborators disable the
// routes that need them; those routes answer 503.
type Config struct {
	Port         int
	Exporter     *export.Exporter
	Compiler     CompileService
	Generator    llm.Client
	Store        DocumentStore
	TemplatePath string
	RateLimit    *ratelimit.Config

	// Auth guards the document and generation routes when set
	Auth func(http.Handler) http.Handler
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	exporter    *export.Exporter
	compiler    CompileService
	generator   llm.Client
	store       DocumentStore
	template    string
	rateLimiter *ratelimit.Limiter
	log         *logrus.Entry
	now         func() time.Time
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		exporter:    cfg.Exporter,
		compiler:    cfg.Compiler,
		generator:   cfg.Generator,
		store:       cfg.Store,
		template:    cfg.TemplatePath,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		log:         logging.WithComponent("server"),
		now:         time.Now,
	}
	if s.exporter == nil {
		s.exporter = export.NewExporter(nil, nil)
	}

	protect := cfg.Auth
	if protect == nil {
		protect = func(h http.Handler) http.Handler { return h }
	}
	guarded := func(h http.HandlerFunc) http.Handler { return protect(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Source analysis
	mux.HandleFunc("POST /latex/strip", s.handleStrip)
	mux.HandleFunc("POST /latex/extract", s.handleExtract)
	mux.HandleFunc("POST /payload/derive", s.handleDerive)
	mux.HandleFunc("POST /payload/plain", s.handlePlain)
	mux.HandleFunc("POST /payload/latex", s.handleRenderLatex)

	// Style codec
	mux.HandleFunc("POST /style/apply", s.handleStyleApply)
	mux.HandleFunc("POST /style/parse", s.handleStyleParse)
	mux.HandleFunc("POST /style/validate", s.handleStyleValidate)

	// Layout and export
	mux.HandleFunc("POST /paginate", s.handlePaginate)
	mux.HandleFunc("POST /export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /export/docx", s.handleExportDOCX)
	mux.HandleFunc("POST /export/txt", s.handleExportText)
	mux.HandleFunc("POST /export/bundle", s.handleExportBundle)
	mux.HandleFunc("POST /compile", s.handleCompile)
	mux.Handle("POST /generate", guarded(s.handleGenerate))

	// Documents
	mux.Handle("POST /documents", guarded(s.handleCreateDocument))
	mux.Handle("GET /documents/{id}", guarded(s.handleGetDocument))
	mux.Handle("GET /documents/{id}/versions", guarded(s.handleListVersions))
	mux.Handle("POST /documents/{id}/style", guarded(s.handleUpdateDocumentStyle))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // pdf capture and generation are slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count, X-Cache, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags each request with an ID and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request completed")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.WithField("limit", info.Limit).Warn("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"features": map[string]bool{
			"capture":   s.exporter.CanCapture(),
			"compile":   s.compiler != nil,
			"generate":  s.generator != nil,
			"documents": s.store != nil,
		},
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it, logging server-side failures
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request error")
	}
	body := map[string]any{"error": err.Error()}
	if details := errorDetails(err); details != nil {
		body["details"] = details
	}
	s.jsonResponse(w, status, body)
}

// fileResponse writes a downloadable artifact
func (s *Server) fileResponse(w http.ResponseWriter, a export.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		s.log.WithError(err).Warn("failed to write file response")
	}
}

// decodeJSON reads the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}
