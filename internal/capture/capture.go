// Package capture rasterizes rendered preview pages in headless Chrome.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/pdfbin"
	"github.com/atsresumie/latex-studio/internal/rendering"
)

// Capture settings
const (
	JPEGQuality  = 96
	MinScale     = 1.75
	MaxScale     = 2.5
	DefaultScale = 2.0
)

// Capturer turns a preview document into one JPEG per page
type Capturer interface {
	CapturePages(ctx context.Context, html string) ([]pdfbin.PageImage, error)
}

// Options configures the headless browser
type Options struct {
	ExecPath string        // Chrome binary; empty uses the default lookup
	Timeout  time.Duration // whole-capture timeout
	Scale    float64       // device scale, clamped to [MinScale, MaxScale]
}

// CaptureError represents a failed page capture. Any page failure aborts the export.
type CaptureError struct {
	Page    int
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error on page %d: %s: %v", e.Page, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error on page %d: %s", e.Page, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// Browser captures pages with chromedp
type Browser struct {
	opts Options
}

// NewBrowser creates a capturer. Zero options fall back to defaults.
func NewBrowser(opts Options) *Browser {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Scale == 0 {
		opts.Scale = DefaultScale
	}
	opts.Scale = ClampScale(opts.Scale)
	if opts.ExecPath == "" {
		opts.ExecPath = os.Getenv("CHROME_PATH")
	}
	return &Browser{opts: opts}
}

// ClampScale limits the device scale factor to [MinScale, MaxScale]
func ClampScale(scale float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, scale))
}

// CountPages returns the number of page elements in a preview document
func CountPages(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("failed to parse preview html: %w", err)
	}
	return doc.Find(rendering.PageSelector).Length(), nil
}

type pageRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CapturePages rasterizes every page element sequentially, never in parallel,
// to bound browser memory.
func (b *Browser) CapturePages(ctx context.Context, html string) ([]pdfbin.PageImage, error) {
	count, err := CountPages(html)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, pdfbin.ErrNoPages
	}

	log := logging.WithComponent("capture")
	log.WithField("pages", count).Debug("starting page capture")

	tmpDir, err := os.MkdirTemp("", "resume-preview-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write preview html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.opts.Timeout)
	defer cancel()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady(rendering.PageSelector, chromedp.ByQuery),
	); err != nil {
		return nil, &CaptureError{Page: 1, Message: "failed to load preview", Cause: err}
	}

	images := make([]pdfbin.PageImage, 0, count)
	for i := 0; i < count; i++ {
		img, err := b.capturePage(browserCtx, i)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	log.WithField("pages", len(images)).Debug("page capture finished")
	return images, nil
}

func (b *Browser) capturePage(ctx context.Context, index int) (pdfbin.PageImage, error) {
	var rect pageRect
	js := fmt.Sprintf(`(() => {
		const r = document.querySelectorAll(%q)[%d].getBoundingClientRect();
		return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
	})()`, rendering.PageSelector, index)

	var shot []byte
	err := chromedp.Run(ctx,
		chromedp.Evaluate(js, &rect),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(JPEGQuality).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      rect.X,
					Y:      rect.Y,
					Width:  rect.Width,
					Height: rect.Height,
					Scale:  b.opts.Scale,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return pdfbin.PageImage{}, &CaptureError{Page: index + 1, Message: "screenshot failed", Cause: err}
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return pdfbin.PageImage{}, &CaptureError{Page: index + 1, Message: "screenshot is not a JPEG", Cause: err}
	}

	return pdfbin.PageImage{JPEG: shot, Width: cfg.Width, Height: cfg.Height}, nil
}
