package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"resume-composer/internal/export"
	"resume-composer/internal/export/raster"
	"resume-composer/internal/render"
)

// viewport width in CSS pixels; wide enough for the 210mm page root.
const (
	viewportWidth  = 1024
	viewportHeight = 1400
)

// ChromedpBrowser loads preview documents into a headless Chrome.
type ChromedpBrowser struct {
	execPath string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewChromedpBrowser returns a browser launching execPath, or the first
// Chrome found on the system when execPath is empty.
func NewChromedpBrowser(execPath string, timeout time.Duration, log zerolog.Logger) *ChromedpBrowser {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpBrowser{execPath: execPath, timeout: timeout, log: log}
}

type chromeSurface struct {
	ctx    context.Context
	cancel []context.CancelFunc
	dir    string
}

var _ raster.Browser = (*ChromedpBrowser)(nil)

// Open writes htmlDoc to a temp dir and navigates a fresh tab to it. A
// browser that cannot be launched yields export.ErrCapabilityMissing.
func (b *ChromedpBrowser) Open(ctx context.Context, htmlDoc []byte) (raster.Surface, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	s := &chromeSurface{}
	tctx, cancelTimeout := context.WithTimeout(ctx, b.timeout)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(tctx, opts...)
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	s.ctx = cctx
	s.cancel = []context.CancelFunc{cancelCtx, cancelAlloc, cancelTimeout}

	// An empty Run launches the browser.
	if err := chromedp.Run(cctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: launch browser: %v", export.ErrCapabilityMissing, err)
	}

	dir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		s.Close()
		return nil, err
	}
	s.dir = dir
	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, htmlDoc, 0o644); err != nil {
		s.Close()
		return nil, err
	}

	err = chromedp.Run(cctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load preview: %w", err)
	}
	b.log.Debug().Str("path", htmlPath).Msg("chromedp: preview loaded")
	return s, nil
}

type rootStyle struct {
	Height   string `json:"height"`
	Overflow string `json:"overflow"`
}

const relaxJS = `(() => {
	const el = document.getElementById(%q);
	if (!el) return null;
	const prev = {height: el.style.height, overflow: el.style.overflow};
	el.style.height = "auto";
	el.style.overflow = "visible";
	return prev;
})()`

const restoreJS = `(() => {
	const el = document.getElementById(%q);
	if (!el) return false;
	const prev = %s;
	el.style.height = prev.height;
	el.style.overflow = prev.overflow;
	return true;
})()`

const boxJS = `(() => {
	const r = document.getElementById(%q).getBoundingClientRect();
	return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
})()`

func (s *chromeSurface) Relax(ctx context.Context) (func(context.Context) error, error) {
	var prev *rootStyle
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(fmt.Sprintf(relaxJS, render.PreviewID), &prev)); err != nil {
		return nil, fmt.Errorf("relax page root: %w", err)
	}
	if prev == nil {
		return nil, fmt.Errorf("#%s: %w", render.PreviewID, export.ErrTargetNotFound)
	}
	saved, err := json.Marshal(prev)
	if err != nil {
		return nil, err
	}
	return func(context.Context) error {
		var ok bool
		js := fmt.Sprintf(restoreJS, render.PreviewID, saved)
		if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, &ok)); err != nil {
			return fmt.Errorf("restore page root: %w", err)
		}
		if !ok {
			return fmt.Errorf("restore page root: #%s: %w", render.PreviewID, export.ErrTargetNotFound)
		}
		return nil
	}, nil
}

// Capture screenshots the page root's full box, including the part below the
// viewport, at scale device pixels per CSS pixel.
func (s *chromeSurface) Capture(ctx context.Context, scale float64) ([]byte, error) {
	var shot []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var box struct {
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if err := chromedp.Evaluate(fmt.Sprintf(boxJS, render.PreviewID), &box).Do(ctx); err != nil {
			return fmt.Errorf("measure page root: %w", err)
		}
		var err error
		shot, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithFromSurface(true).
			WithClip(&page.Viewport{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height, Scale: scale}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return shot, nil
}

func (s *chromeSurface) Close() error {
	for _, c := range s.cancel {
		c()
	}
	if s.dir != "" {
		return os.RemoveAll(s.dir)
	}
	return nil
}
