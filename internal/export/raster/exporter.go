// Package raster exports a rendered page as an image-based PDF: the page is
// rasterized once at full height, then cut into page-high bands.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"

	"github.com/rs/zerolog"

	"resume-composer/internal/export"
)

// MinScale is the lowest supersampling factor accepted for capture.
const MinScale = 2.0

// Browser loads an HTML document into a live page that can be captured.
type Browser interface {
	Open(ctx context.Context, htmlDoc []byte) (Surface, error)
}

// Surface is a loaded page holding the page root element.
type Surface interface {
	// Relax lifts the root's fixed height and overflow clipping so the full
	// content height is measurable, and returns a func that puts the
	// original values back. It returns export.ErrTargetNotFound when the
	// root element is absent.
	Relax(ctx context.Context) (restore func(context.Context) error, err error)
	// Capture rasterizes the whole root element at scale and returns a PNG.
	Capture(ctx context.Context, scale float64) ([]byte, error)
	Close() error
}

// Result describes a finished export.
type Result struct {
	Pages  int
	Width  int
	Height int
}

type Exporter struct {
	browser Browser
	page    Page
	scale   float64
	guard   export.Guard
	log     zerolog.Logger
}

type Option func(*Exporter)

// WithScale sets the capture scale; values below MinScale are raised to it.
func WithScale(s float64) Option {
	return func(e *Exporter) {
		if s < MinScale {
			s = MinScale
		}
		e.scale = s
	}
}

func WithPage(p Page) Option {
	return func(e *Exporter) { e.page = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// New returns an exporter capturing through b. A nil b yields an exporter
// whose every call fails with export.ErrCapabilityMissing.
func New(b Browser, opts ...Option) *Exporter {
	e := &Exporter{browser: b, page: A4, scale: MinScale, log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.guard.Busy() }

// Export rasterizes htmlDoc and writes the PDF to w. Nothing is written to w
// unless the whole pipeline succeeds. A second call while one is running
// fails with export.ErrExportInProgress.
func (e *Exporter) Export(ctx context.Context, htmlDoc []byte, title string, w io.Writer) (Result, error) {
	if e.browser == nil {
		return Result{}, fmt.Errorf("pdf: %w: no browser configured", export.ErrCapabilityMissing)
	}
	release, err := e.guard.Acquire()
	if err != nil {
		return Result{}, fmt.Errorf("pdf: %w", err)
	}
	defer release()

	surf, err := e.browser.Open(ctx, htmlDoc)
	if err != nil {
		return Result{}, classify("open page", err)
	}
	defer func() {
		if cerr := surf.Close(); cerr != nil {
			e.log.Warn().Err(cerr).Msg("raster: close surface")
		}
	}()

	shot, err := e.capture(ctx, surf)
	if err != nil {
		return Result{}, err
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return Result{}, export.Failed("decode raster", err)
	}
	b := img.Bounds()
	bands := Paginate(b.Dx(), b.Dy(), e.page)
	if len(bands) == 0 {
		return Result{}, export.Failed("paginate", errors.New("empty raster"))
	}

	var out bytes.Buffer
	if err := assemble(&out, img, bands, e.page, title); err != nil {
		return Result{}, export.Failed("assemble pdf", err)
	}
	if _, err := out.WriteTo(w); err != nil {
		return Result{}, export.Failed("write pdf", err)
	}

	e.log.Debug().
		Int("pages", len(bands)).
		Int("raster_width", b.Dx()).
		Int("raster_height", b.Dy()).
		Msg("raster: pdf assembled")
	return Result{Pages: len(bands), Width: b.Dx(), Height: b.Dy()}, nil
}

// capture relaxes the page root, takes the raster and restores the root on
// every path out.
func (e *Exporter) capture(ctx context.Context, surf Surface) ([]byte, error) {
	restore, err := surf.Relax(ctx)
	if err != nil {
		return nil, classify("relax layout", err)
	}
	defer func() {
		if rerr := restore(context.WithoutCancel(ctx)); rerr != nil {
			e.log.Warn().Err(rerr).Msg("raster: restore layout")
		}
	}()

	shot, err := surf.Capture(ctx, e.scale)
	if err != nil {
		return nil, classify("rasterize", err)
	}
	return shot, nil
}

// classify keeps an already-classified failure and marks anything else as a
// mid-pipeline failure.
func classify(step string, err error) error {
	if errors.Is(err, export.ErrCapabilityMissing) || errors.Is(err, export.ErrTargetNotFound) {
		return fmt.Errorf("pdf: %s: %w", step, err)
	}
	return export.Failed(step, err)
}
