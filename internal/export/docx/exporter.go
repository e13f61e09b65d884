package docx

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"resume-composer/internal/export"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
)

// Result describes a finished export.
type Result struct {
	Paragraphs int
}

type Exporter struct {
	guard export.Guard
	log   zerolog.Logger
	now   func() time.Time
}

type Option func(*Exporter)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// WithClock overrides the timestamp written into the package properties.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func New(opts ...Option) *Exporter {
	e := &Exporter{log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Exporter) Busy() bool { return e.guard.Busy() }

// Export writes doc as a .docx package to w. Nothing is written unless the
// package is complete.
func (e *Exporter) Export(ctx context.Context, doc model.Document, theme render.Theme, font render.Font, w io.Writer) (Result, error) {
	release, err := e.guard.Acquire()
	if err != nil {
		return Result{}, fmt.Errorf("docx: %w", err)
	}
	defer release()

	if err := ctx.Err(); err != nil {
		return Result{}, export.Failed("docx", err)
	}

	flow := Build(doc, theme, font)
	if err := Pack(flow, w, e.now()); err != nil {
		return Result{}, export.Failed("pack docx", err)
	}

	e.log.Debug().
		Int("paragraphs", len(flow.Paragraphs)).
		Str("font", flow.Font).
		Msg("docx: package written")
	return Result{Paragraphs: len(flow.Paragraphs)}, nil
}
