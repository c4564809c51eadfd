// Package compiler is the client of the external LaTeX to PDF compile service.
package compiler

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/atsresumie/latex-studio/internal/cache"
	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/validation"
)

// maxPDFBytes bounds the compile service response
const maxPDFBytes = 20 << 20

// CompileError represents a failed compile request
type CompileError struct {
	Status  int
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Result is a compiled document
type Result struct {
	PDF    []byte `json:"-"`
	Pages  int    `json:"pages"`
	Cached bool   `json:"cached"`
	Key    string `json:"key"`
}

// Options configures a Client
type Options struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Cache    cache.Cache  // optional
	HTTP     *http.Client // optional; built from Timeout when nil
}

// Client posts LaTeX to {baseURL}/compile and receives PDF bytes.
// Identical concurrent requests share one upstream call, and results are
// cached by the SHA-256 of the source.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	timeout  time.Duration
	group    singleflight.Group
}

// NewClient creates a compile service client
func NewClient(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		timeout:  timeout,
	}
}

// Key returns the cache key of a LaTeX source
func Key(latex string) string {
	sum := sha256.Sum256([]byte(latex))
	return hex.EncodeToString(sum[:])
}

// Compile returns the PDF bytes for latex
func (c *Client) Compile(ctx context.Context, latex string) ([]byte, error) {
	res, err := c.CompileWithInfo(ctx, latex)
	if err != nil {
		return nil, err
	}
	return res.PDF, nil
}

// CompileWithInfo validates the source, then serves it from cache or the
// compile service, and reports the page count of the result.
func (c *Client) CompileWithInfo(ctx context.Context, latex string) (*Result, error) {
	if err := validation.Latex(latex); err != nil {
		return nil, err
	}

	key := Key(latex)
	log := logging.WithComponent("compiler").WithField("key", key[:12])

	if c.cache != nil {
		if pdf, err := c.cache.Get(ctx, key); err == nil {
			log.Debug("compile cache hit")
			return c.result(pdf, key, true)
		} else if !errors.Is(err, cache.ErrMiss) {
			log.WithError(err).Warn("compile cache read failed")
		}
	}

	// The upstream call is shared by every caller waiting on key, so it runs
	// detached from the first caller's cancellation and bounded by the timeout.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.post(callCtx, latex)
	})

	var shared singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case shared = <-ch:
	}
	if shared.Err != nil {
		return nil, shared.Err
	}
	pdf := shared.Val.([]byte)
	log.WithField("shared", shared.Shared).WithField("bytes", len(pdf)).Info("compiled latex")

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, pdf, c.cacheTTL); err != nil {
			log.WithError(err).Warn("compile cache write failed")
		}
	}
	return c.result(pdf, key, false)
}

func (c *Client) result(pdf []byte, key string, cached bool) (*Result, error) {
	pages, err := validation.CountPDFPages(pdf)
	if err != nil {
		return nil, &CompileError{Message: "compile service returned an unreadable PDF", Cause: err}
	}
	return &Result{PDF: pdf, Pages: pages, Cached: cached, Key: key}, nil
}

func (c *Client) post(ctx context.Context, latex string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, &CompileError{Message: "compile service URL is not configured"}
	}

	body, err := json.Marshal(map[string]string{"latex": latex})
	if err != nil {
		return nil, &CompileError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compile", bytes.NewReader(body))
	if err != nil {
		return nil, &CompileError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &CompileError{Message: "compile request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, &CompileError{Status: resp.StatusCode, Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CompileError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("status=%d body=%s", resp.StatusCode, truncate(string(data), 500)),
		}
	}
	if len(data) == 0 {
		return nil, &CompileError{Status: resp.StatusCode, Message: "compile service returned an empty PDF"}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
